package render

// Theme はデータビューの配色です。
type Theme string

const (
	ThemeAuto          Theme = "auto"
	ThemeLight         Theme = "light"
	ThemeDark          Theme = "dark"
	ThemeOriginal      Theme = "original"
	ThemeClassic       Theme = "classic"
	ThemeClassicModern Theme = "classic-modern"
)

// ThemeStorageKey はブラウザに選択中のテーマを保存するキーです。
const ThemeStorageKey = "receiptisan.dataView.theme"

// UIThemes は切替ボタンで巡回する順序です。
var UIThemes = []Theme{ThemeLight, ThemeDark, ThemeOriginal, ThemeClassic, ThemeClassicModern}

var themeLabels = map[Theme]string{
	ThemeLight:         "L",
	ThemeDark:          "D",
	ThemeOriginal:      "O",
	ThemeClassic:       "C",
	ThemeClassicModern: "CM",
}

var themeNames = map[Theme]string{
	ThemeLight:         "ライト",
	ThemeDark:          "ダーク",
	ThemeOriginal:      "オリジナル",
	ThemeClassic:       "クラシック",
	ThemeClassicModern: "クラシック(モダン)",
}

// ParseTheme は設定値をテーマにします。未知の値は auto です。
func ParseTheme(s string) Theme {
	t := Theme(s)
	if _, ok := themeLabels[t]; ok {
		return t
	}
	return ThemeAuto
}

// BodyClass は body 要素の初期クラスです。auto はスクリプトが決めるまで light です。
func (t Theme) BodyClass() string {
	if t == ThemeAuto || t == "" {
		return "theme-" + string(ThemeLight)
	}
	return "theme-" + string(t)
}

// ThemeConfig はテーマ切替スクリプトに渡す設定です。
type ThemeConfig struct {
	StorageKey      string           `json:"storageKey"`
	ConfiguredTheme Theme            `json:"configuredTheme"`
	Themes          []Theme          `json:"themes"`
	Labels          map[Theme]string `json:"labels"`
	Names           map[Theme]string `json:"names"`
}

func NewThemeConfig(t Theme) ThemeConfig {
	if t == "" {
		t = ThemeAuto
	}
	return ThemeConfig{
		StorageKey:      ThemeStorageKey,
		ConfiguredTheme: t,
		Themes:          UIThemes,
		Labels:          themeLabels,
		Names:           themeNames,
	}
}
