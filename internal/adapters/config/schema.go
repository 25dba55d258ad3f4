package config

// Bridgefile represents the structure of the ndkbridge.yaml project file.
type Bridgefile struct {
	Version     string            `yaml:"version"`
	Project     string            `yaml:"project"`
	Manifest    string            `yaml:"manifest"`
	Output      string            `yaml:"output"`
	TargetDir   string            `yaml:"targetDir"`
	APILevel    int               `yaml:"apiLevel"`
	ABIs        []string          `yaml:"abis"`
	Libraries   []string          `yaml:"libraries"`
	Environment map[string]string `yaml:"environment"`
}
