// Enums shared by configuration, document model and recipes. Kept in a
// separate package so that config does not depend on the document engine.
package common

// Paragraph alignment.
// ENUM(left, center, right, justify)
type Alignment int

// Jc returns value of w:jc attribute for the alignment.
func (a Alignment) Jc() string {
	switch a {
	case AlignmentCenter:
		return "center"
	case AlignmentRight:
		return "right"
	case AlignmentJustify:
		return "both"
	default:
		return "left"
	}
}

// AlignmentFromJc is the reverse of Jc, used when reading documents back.
// Values written by other producers ("start", "end", "distribute") are mapped
// to the closest alignment.
func AlignmentFromJc(jc string) Alignment {
	switch jc {
	case "center":
		return AlignmentCenter
	case "right", "end":
		return AlignmentRight
	case "both", "distribute":
		return AlignmentJustify
	default:
		return AlignmentLeft
	}
}

// Kind of list item.
// ENUM(bullet, numbered)
type ListKind int

// Encoding used for embedded images.
// ENUM(jpeg, png)
type ImageFormat int

func (f ImageFormat) Ext() string {
	switch f {
	case ImageFormatPng:
		return ".png"
	case ImageFormatJpeg:
		return ".jpeg"
	default:
		// this should never happen
		panic("unsupported image format requested")
	}
}

func (f ImageFormat) MimeType() string {
	switch f {
	case ImageFormatPng:
		return "image/png"
	case ImageFormatJpeg:
		return "image/jpeg"
	default:
		// this should never happen
		panic("unsupported image format requested")
	}
}

// Page size of the generated document.
// ENUM(letter, a4)
type PaperSize int

// Twips returns page width and height in twentieths of a point.
func (p PaperSize) Twips() (int, int) {
	switch p {
	case PaperSizeA4:
		return 11906, 16838
	default:
		return 12240, 15840
	}
}
