package classify

import "github.com/aalvaropc/domscan/internal/domain"

// Meta is how a resource type is presented.
type Meta struct {
	Icon  string
	Title string
}

const fallbackIcon = "📄"

var metaTable = map[domain.ResourceType]Meta{
	domain.ResourceImage: {Icon: "🖼️", Title: "Images"},
	domain.ResourceJS:    {Icon: "📜", Title: "JavaScript"},
	domain.ResourceCSS:   {Icon: "🎨", Title: "Stylesheets"},
	domain.ResourceAPI:   {Icon: "🔌", Title: "API Calls"},
	domain.ResourceOther: {Icon: "📦", Title: "Other Resources"},
}

// DisplayMeta returns the icon and title for t. Types outside the table get a
// generic icon and a title derived from the type itself.
func DisplayMeta(t domain.ResourceType) Meta {
	if m, ok := metaTable[t]; ok {
		return m
	}
	return Meta{Icon: fallbackIcon, Title: string(t) + " Data"}
}
