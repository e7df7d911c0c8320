package config

// NOTE: all sizes and offsets are in bytes
const (
	// DAT container layout
	SizeHeader         = 512
	SizeFramePad       = 512 // frames are padded up to this boundary
	PortsPerController = 8

	// header offset of the controller count, little-endian uint16
	OffsetControllerCount = 16

	// sane default when the scene does not set one
	DefaultFPS = 30

	// Path
	PathFramesDir = "tmp/frames"
)
