// FILE: lixenwraith/confchain/codec/doc.go

// Package codec is a small serialization facade over encoding/json, yaml.v3 and
// BurntSushi/toml.
//
// Decoding is two-step: the document is parsed into a generic tree, then mapped
// onto the target with mapstructure, so every format shares the same lenient
// conversions (weak typing, durations, RFC3339 times, comma lists, IPs, CIDRs,
// URLs). Unknown keys are ignored unless the codec is Strict.
//
//	var cfg Settings
//	err := codec.YAML().DeserializeFile("settings.yaml", &cfg)
//
//	out, err := codec.JSON(codec.Pretty()).Serialize(cfg)
//
// Optional features:
//   - WithSchema / WithSchemaFile validate documents against a JSON schema
//   - WithDependency / WithNamedDependency fill `inject`-tagged fields after decoding
//   - Set lazily builds one codec per format and picks one by file extension
package codec
