package common

const (
	SrcFileExtension = ".mag"
	ModuleFileName   = "mag-mod.toml"
	MagolorVersion   = "0.1.0"
)
