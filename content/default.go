package content

import (
	_ "embed"
)

//go:embed default.toml
var defaultDataset []byte

// DefaultSource names the embedded dataset in logs
const DefaultSource = "builtin"

// Default returns the embedded dataset
func Default() (*Dataset, error) {
	return Decode(defaultDataset, DefaultSource)
}
