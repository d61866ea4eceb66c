package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mosra/magnum-plugins-sub000/opengex"
	"github.com/mosra/magnum-plugins-sub000/schema"
)

// loadGrammar picks the grammar from the schema, profile, structures and
// properties settings. A schema file wins over a profile. Without either
// the keyword lists are only good for parsing: the resulting grammar has no
// roots.
func loadGrammar() (*schema.Grammar, error) {
	if path := viper.GetString("schema"); path != "" {
		return schema.Load(path)
	}
	switch profile := viper.GetString("profile"); profile {
	case "":
		return &schema.Grammar{
			Structures: viper.GetStringSlice("structures"),
			Properties: viper.GetStringSlice("properties"),
		}, nil
	case "opengex":
		return &schema.Grammar{
			Structures: opengex.Structures,
			Properties: opengex.Properties,
			Roots:      opengex.Roots,
			Rules:      opengex.Rules,
		}, nil
	default:
		return nil, fmt.Errorf("unknown profile %q (want opengex)", profile)
	}
}
