package icon

// Density is one Android screen-density bucket and the pixel sizes its
// icons are rendered at.
type Density struct {
	Name           string // resource directory, e.g. "mipmap-hdpi"
	LauncherSize   int    // ic_launcher and ic_launcher_round
	ForegroundSize int    // ic_launcher_foreground (108dp canvas)
}

var densities = [...]Density{
	{Name: "mipmap-mdpi", LauncherSize: 48, ForegroundSize: 108},
	{Name: "mipmap-hdpi", LauncherSize: 72, ForegroundSize: 162},
	{Name: "mipmap-xhdpi", LauncherSize: 96, ForegroundSize: 216},
	{Name: "mipmap-xxhdpi", LauncherSize: 144, ForegroundSize: 324},
	{Name: "mipmap-xxxhdpi", LauncherSize: 192, ForegroundSize: 432},
}

// Densities returns the density buckets from lowest to highest. The slice
// is a fresh copy on every call.
func Densities() []Density {
	out := make([]Density, len(densities))
	copy(out, densities[:])
	return out
}

// Kind identifies which launcher icon file a target produces.
type Kind string

const (
	KindLauncher   Kind = "launcher"
	KindRound      Kind = "round"
	KindForeground Kind = "foreground"
)

// Filename returns the PNG file name Android expects for the kind.
func (k Kind) Filename() string {
	switch k {
	case KindRound:
		return "ic_launcher_round.png"
	case KindForeground:
		return "ic_launcher_foreground.png"
	default:
		return "ic_launcher.png"
	}
}

// Size returns the pixel size of this kind of icon in density d.
func (k Kind) Size(d Density) int {
	if k == KindForeground {
		return d.ForegroundSize
	}
	return d.LauncherSize
}
