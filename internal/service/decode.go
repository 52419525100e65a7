package service

import (
	"github.com/go-viper/mapstructure/v2"

	"rental-backoffice/internal/domain"
)

// decodeAllowed copies the keys of in that out declares into out. Other keys
// are dropped; a value of the wrong type is a validation failure.
func decodeAllowed(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return domain.Upstream("build decoder", err)
	}
	if err := dec.Decode(in); err != nil {
		return domain.Invalidf("invalid fields: %v", err)
	}
	return nil
}
