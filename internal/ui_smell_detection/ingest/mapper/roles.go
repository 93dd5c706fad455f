package mapper

import (
	"strings"
	"unicode"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

// builtins are framework-provided views. Their kinds are capitalised like
// user components, so naming alone cannot tell them apart.
var builtins = map[string]map[string]bool{
	"compose": set(
		"Box", "BoxWithConstraints", "Column", "Row", "Spacer", "Surface", "Card",
		"ElevatedCard", "OutlinedCard", "Scaffold", "TopAppBar", "BottomAppBar",
		"NavigationBar", "Text", "TextField", "OutlinedTextField", "Button",
		"TextButton", "OutlinedButton", "IconButton", "Icon", "Image", "Checkbox",
		"Switch", "Slider", "Divider", "HorizontalDivider", "ListItem", "LazyColumn",
		"LazyRow", "LazyVerticalGrid", "CircularProgressIndicator",
		"LinearProgressIndicator", "AlertDialog", "FloatingActionButton",
	),
	"swiftui": set(
		"VStack", "HStack", "ZStack", "LazyVStack", "LazyHStack", "LazyVGrid",
		"LazyHGrid", "Grid", "GridRow", "ScrollView", "List", "ForEach", "Section",
		"Group", "Form", "NavigationView", "NavigationStack", "NavigationLink",
		"TabView", "Text", "TextField", "SecureField", "Button", "Toggle", "Slider",
		"Stepper", "Picker", "Image", "Label", "Spacer", "Divider", "Color",
		"ProgressView", "GeometryReader",
	),
}

func set(kinds ...string) map[string]bool {
	out := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		out[k] = true
	}
	return out
}

// framework normalises the document's framework name.
func framework(f string) string {
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case "jetpack_compose", "jetpack-compose", "jetpack compose":
		return "compose"
	}
	return f
}

// role defaults by naming convention: capitalised or dotted kinds are
// components, lowercase host tags and the framework's own views are
// elements.
func role(r, kind, fw string) domain.NodeRole {
	if r != "" {
		return domain.NodeRole(r)
	}
	k := strings.TrimSpace(kind)
	if k == "" {
		return domain.RoleComponent
	}
	if builtins[framework(fw)][k] {
		return domain.RoleElement
	}
	first := []rune(k)[0]
	if unicode.IsUpper(first) || strings.Contains(k, ".") {
		return domain.RoleComponent
	}
	return domain.RoleElement
}
