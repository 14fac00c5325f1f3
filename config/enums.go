package config

//go:generate go tool go-enum --marshal --names --values

// Specification of requested output type.
// ENUM(png, jpeg, tree, display)
type OutputFmt int

// IsImage reports whether format requires rasterization.
func (o OutputFmt) IsImage() bool {
	return o == OutputFmtPng || o == OutputFmtJpeg
}

// Ext returns file extension for the format.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtPng:
		return ".png"
	case OutputFmtJpeg:
		return ".jpg"
	case OutputFmtTree, OutputFmtDisplay:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
