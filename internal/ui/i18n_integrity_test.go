package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-journal/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in the locale JSON files.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyWinEntries,
		config.TKeyMenuEntries,
		config.TKeyMenuRefresh,
		config.TKeyMenuSettings,
		config.TKeyTrayStatus,
		config.TKeyTrayStatusZero,
		config.TKeyNotifStart,
		config.TKeyNotifSuccess,
		config.TKeyNotifError,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblMinutes,
		config.TKeyLblRefresh,
		config.TKeyHelpInterval,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyLblGeneral,
		config.TKeyLblBackend,
		config.TKeyLblURL,
		config.TKeyHelpURL,
		config.TKeyLblUser,
		config.TKeyLblPass,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyLblFooter,
		config.TKeyLblFilter,
		config.TKeyLblNoEntries,
		config.TKeyLblOffline,
		config.TKeyBtnAdd,
		config.TKeyPickerTitle,
		config.TKeyDlgUpdateFail,
		config.TKeyFilterAll,
		config.TKeyFilterDream,
		config.TKeyFilterJournal,
		config.TKeyFilterTada,
		config.TKeyFilterGratitude,
		config.TKeyRelToday,
		config.TKeyRelYesterday,
		config.TKeyRelDaysAgo,
		config.TKeyFormatMonthDay,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
		config.TKeyErrURLReq,
	}

	definedKeys := make(map[string]bool, len(keysToCheck))
	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	for _, locale := range []string{"active.en.json", "active.fr.json"} {
		t.Run(locale, func(t *testing.T) {
			path := filepath.Join("locales", locale)
			content, err := os.ReadFile(path)
			require.NoError(t, err, "Must load %s", locale)

			var jsonMap map[string]interface{}
			err = json.Unmarshal(content, &jsonMap)
			require.NoError(t, err, "JSON must be valid")

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, locale)
			}

			// Check for orphan keys in JSON (keys that exist in JSON but not in Go)
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !definedKeys[jsonKey] {
					t.Logf("Warning: Key '%s' exists in %s but is not checked in the test suite (might be unused)", jsonKey, locale)
				}
			}
		})
	}
}
