package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	return renderTOML("# finreply configuration (TOML)\n\n", func(o ConfigOption) any { return o.Default })
}

// RenderEffectiveTOML renders the resolved configuration held by v.
// Secrets are masked.
func RenderEffectiveTOML(v *viper.Viper) string {
	return renderTOML("# finreply effective configuration\n\n", func(o ConfigOption) any {
		val := v.Get(o.Key)
		if o.Key == "auth.token" && v.GetString(o.Key) != "" {
			return "********"
		}
		return val
	})
}

func renderTOML(header string, value func(ConfigOption) any) string {
	var b strings.Builder
	b.WriteString(header)

	opts := GetConfigOptions()
	topLevel := make([]ConfigOption, 0, len(opts))
	sections := make(map[string][]ConfigOption)
	sectionOrder := make([]string, 0)

	for _, o := range opts {
		o.Default = value(o)
		if !strings.Contains(o.Key, ".") {
			topLevel = append(topLevel, o)
			continue
		}
		parts := strings.SplitN(o.Key, ".", 2)
		section := parts[0]
		if _, ok := sections[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{
			Key:     parts[1],
			Default: o.Default,
			Comment: o.Comment,
		})
	}

	for _, o := range topLevel {
		writeTOMLOption(&b, o.Key, o.Default, o.Comment)
	}
	for _, section := range sectionOrder {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
		}
	}
	return b.String()
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	switch v := value.(type) {
	case string:
		b.WriteString(fmt.Sprintf("%s = %s\n\n", key, strconv.Quote(v)))
	case bool, int, int64:
		b.WriteString(fmt.Sprintf("%s = %v\n\n", key, v))
	case float64:
		b.WriteString(fmt.Sprintf("%s = %s\n\n", key, strconv.FormatFloat(v, 'f', -1, 64)))
	default:
		b.WriteString(fmt.Sprintf("%s = %s\n\n", key, strconv.Quote(fmt.Sprint(v))))
	}
}
