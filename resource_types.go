package wrc

import "fmt"

// Resource types. Numeric types come from the Windows RT_* identifiers
// of the first tree level, MUI and WEVT_TEMPLATE are named types.
type ResourceType int

const (
	RESOURCE_TYPE_UNKNOWN ResourceType = iota
	RESOURCE_TYPE_CURSOR
	RESOURCE_TYPE_BITMAP
	RESOURCE_TYPE_ICON
	RESOURCE_TYPE_MENU
	RESOURCE_TYPE_DIALOG
	RESOURCE_TYPE_STRING
	RESOURCE_TYPE_FONT_DIRECTORY
	RESOURCE_TYPE_FONT
	RESOURCE_TYPE_ACCELERATOR
	RESOURCE_TYPE_RAW_DATA
	RESOURCE_TYPE_MESSAGE_TABLE
	RESOURCE_TYPE_GROUP_CURSOR
	RESOURCE_TYPE_GROUP_ICON
	RESOURCE_TYPE_VERSION
	RESOURCE_TYPE_DIALOG_INCLUDE
	RESOURCE_TYPE_PLUG_AND_PLAY
	RESOURCE_TYPE_VXD
	RESOURCE_TYPE_ANIMATED_CURSOR
	RESOURCE_TYPE_ANIMATED_ICON
	RESOURCE_TYPE_HTML
	RESOURCE_TYPE_MANIFEST
	RESOURCE_TYPE_MUI
	RESOURCE_TYPE_WEVT_TEMPLATE
)

const RESOURCE_IDENTIFIER_FLAG_HAS_NAME = 0x80000000

var resource_identifier_types = map[uint32]ResourceType{
	1:  RESOURCE_TYPE_CURSOR,
	2:  RESOURCE_TYPE_BITMAP,
	3:  RESOURCE_TYPE_ICON,
	4:  RESOURCE_TYPE_MENU,
	5:  RESOURCE_TYPE_DIALOG,
	6:  RESOURCE_TYPE_STRING,
	7:  RESOURCE_TYPE_FONT_DIRECTORY,
	8:  RESOURCE_TYPE_FONT,
	9:  RESOURCE_TYPE_ACCELERATOR,
	10: RESOURCE_TYPE_RAW_DATA,
	11: RESOURCE_TYPE_MESSAGE_TABLE,
	12: RESOURCE_TYPE_GROUP_CURSOR,
	14: RESOURCE_TYPE_GROUP_ICON,
	16: RESOURCE_TYPE_VERSION,
	17: RESOURCE_TYPE_DIALOG_INCLUDE,
	19: RESOURCE_TYPE_PLUG_AND_PLAY,
	20: RESOURCE_TYPE_VXD,
	21: RESOURCE_TYPE_ANIMATED_CURSOR,
	22: RESOURCE_TYPE_ANIMATED_ICON,
	23: RESOURCE_TYPE_HTML,
	24: RESOURCE_TYPE_MANIFEST,
}

var resource_type_names = map[ResourceType]string{
	RESOURCE_TYPE_UNKNOWN:         "RT_UNKNOWN",
	RESOURCE_TYPE_CURSOR:          "RT_CURSOR",
	RESOURCE_TYPE_BITMAP:          "RT_BITMAP",
	RESOURCE_TYPE_ICON:            "RT_ICON",
	RESOURCE_TYPE_MENU:            "RT_MENU",
	RESOURCE_TYPE_DIALOG:          "RT_DIALOG",
	RESOURCE_TYPE_STRING:          "RT_STRING",
	RESOURCE_TYPE_FONT_DIRECTORY:  "RT_FONTDIR",
	RESOURCE_TYPE_FONT:            "RT_FONT",
	RESOURCE_TYPE_ACCELERATOR:     "RT_ACCELERATOR",
	RESOURCE_TYPE_RAW_DATA:        "RT_RCDATA",
	RESOURCE_TYPE_MESSAGE_TABLE:   "RT_MESSAGETABLE",
	RESOURCE_TYPE_GROUP_CURSOR:    "RT_GROUP_CURSOR",
	RESOURCE_TYPE_GROUP_ICON:      "RT_GROUP_ICON",
	RESOURCE_TYPE_VERSION:         "RT_VERSION",
	RESOURCE_TYPE_DIALOG_INCLUDE:  "RT_DLGINCLUDE",
	RESOURCE_TYPE_PLUG_AND_PLAY:   "RT_PLUGPLAY",
	RESOURCE_TYPE_VXD:             "RT_VXD",
	RESOURCE_TYPE_ANIMATED_CURSOR: "RT_ANICURSOR",
	RESOURCE_TYPE_ANIMATED_ICON:   "RT_ANIICON",
	RESOURCE_TYPE_HTML:            "RT_HTML",
	RESOURCE_TYPE_MANIFEST:        "RT_MANIFEST",
	RESOURCE_TYPE_MUI:             "MUI",
	RESOURCE_TYPE_WEVT_TEMPLATE:   "WEVT_TEMPLATE",
}

func (self ResourceType) String() string {
	name, pres := resource_type_names[self]
	if pres {
		return name
	}
	return fmt.Sprintf("ResourceType(%d)", int(self))
}

func (self ResourceType) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

// Maps a first level tree entry to its resource type.
func resourceTypeFromEntry(identifier uint32, name string) ResourceType {
	if identifier&RESOURCE_IDENTIFIER_FLAG_HAS_NAME == 0 {
		return resource_identifier_types[identifier]
	}

	switch name {
	case "MUI":
		return RESOURCE_TYPE_MUI
	case "WEVT_TEMPLATE":
		return RESOURCE_TYPE_WEVT_TEMPLATE
	}
	return RESOURCE_TYPE_UNKNOWN
}
