package config

// WorkspaceFile represents the structure of the WORKSPACE.yaml file at the workspace root.
type WorkspaceFile struct {
	Name        string   `yaml:"name" validate:"required,workspace_name"`
	PackagePath []string `yaml:"package_path" validate:"omitempty,dive,required"`
}

// BuildFile represents the structure of a BUILD.yaml package file.
type BuildFile struct {
	DefaultVisibility []string              `yaml:"default_visibility" validate:"omitempty,dive,visibility"`
	Targets           map[string]*TargetDTO `yaml:"targets" validate:"dive,keys,required,endkeys,required"`
}

// TargetDTO represents a target definition in a BUILD file.
type TargetDTO struct {
	Rule       string   `yaml:"rule" validate:"required"`
	Srcs       []string `yaml:"srcs" validate:"omitempty,dive,required"`
	Deps       []string `yaml:"deps" validate:"omitempty,dive,required"`
	Outs       []string `yaml:"outs" validate:"omitempty,dive,required"`
	Tools      []string `yaml:"tools" validate:"omitempty,dive,required"`
	Tests      []string `yaml:"tests" validate:"omitempty,dive,required"`
	Cmd        string   `yaml:"cmd"`
	Visibility []string `yaml:"visibility" validate:"omitempty,dive,visibility"`
	TestOnly   bool     `yaml:"testonly"`
}
