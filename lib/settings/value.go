package settingshandler

import (
	"encoding/json"

	"github.com/pkg/errors"

	"servis-takip-backend/models"
)

// SettingValue is the decoded form of the settings value column.
// The column stores either a plain string or a JSON document; the kind
// column says which, and encode/decode happens only here.
type SettingValue struct {
	Kind models.SettingValueKind
	Str  string
	Doc  map[string]interface{}
}

func DecodeValue(kind models.SettingValueKind, raw string) (SettingValue, error) {
	switch kind {
	case models.SettingValueJSON:
		doc := map[string]interface{}{}
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &doc); err != nil {
				return SettingValue{}, errors.Wrap(err, "ayar değeri çözümlenemedi")
			}
		}
		return SettingValue{Kind: kind, Doc: doc}, nil
	case models.SettingValueString, "":
		return SettingValue{Kind: models.SettingValueString, Str: raw}, nil
	default:
		return SettingValue{}, errors.Errorf("bilinmeyen ayar türü: %v", kind)
	}
}

func (v SettingValue) Encode() (string, error) {
	if v.Kind == models.SettingValueJSON {
		data, err := json.Marshal(v.Doc)
		if err != nil {
			return "", errors.Wrap(err, "ayar değeri kodlanamadı")
		}
		return string(data), nil
	}
	return v.Str, nil
}
