package config

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// ApplyOverrides sets scenario fields from dotted json paths, for example
// "controller.lookahead_distance" => "5". Values are converted to the field's type.
func (s *Scenario) ApplyOverrides(overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}
	tree := map[string]interface{}{}
	for key, value := range overrides {
		if err := insertPath(tree, strings.Split(key, "."), value); err != nil {
			return errors.Wrapf(err, "override %q", key)
		}
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           s,
	})
	if err != nil {
		return err
	}
	return errors.Wrap(decoder.Decode(tree), "failed to apply overrides")
}

func insertPath(tree map[string]interface{}, keys []string, value string) error {
	head := keys[0]
	if head == "" {
		return errors.New("empty path segment")
	}
	if len(keys) == 1 {
		if _, ok := tree[head].(map[string]interface{}); ok {
			return errors.Errorf("%q is an object", head)
		}
		tree[head] = value
		return nil
	}
	child, ok := tree[head].(map[string]interface{})
	if !ok {
		if _, exists := tree[head]; exists {
			return errors.Errorf("%q is not an object", head)
		}
		child = map[string]interface{}{}
		tree[head] = child
	}
	return insertPath(child, keys[1:], value)
}
