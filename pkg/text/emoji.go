package text

import (
	"hash/fnv"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/enescakir/emoji"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	EmojiTheme       = emoji.FileFolder.String()
	EmojiThemeOpen   = emoji.OpenFileFolder.String()
	EmojiPDF         = emoji.PageFacingUp.String()
	EmojiDOCX        = emoji.Memo.String()
	EmojiOther       = emoji.QuestionMark.String()
	EmojiWarning     = emoji.Warning.String()
	EmojiCheckmark   = emoji.CheckMarkButton.String()
	EmojiWastebasket = emoji.Wastebasket.String()
)

var (
	nameColorHashSalt uint32 = 6969420
	// NOTE: changing these dimensions uncovers some awkward indexing issues in the color
	// selection algo. avoid if you can help it
	nameColors = colorGrid(4, 4)
)

// DocumentIcon picks an icon from the file extension.
func DocumentIcon(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return EmojiPDF
	case ".docx":
		return EmojiDOCX
	default:
		return EmojiOther
	}
}

// Return the time in a human-readable format relative to the current time.
func RelativeTime(then time.Time) string {
	now := time.Now()
	ago := now.Sub(then)
	if ago < time.Minute {
		return "just now"
	} else if ago < humanize.Week {
		return humanize.CustomRelTime(then, now, "ago", "from now", magnitudes)
	}
	return then.Format("02 Jan 2006 15:04 MST")
}

// Bytes renders a file size, "1.2 MB".
func Bytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Magnitudes for relative time.
var magnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "now", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
	{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 month %s", DivBy: 1},
	{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
	{D: 18 * humanize.Month, Format: "1 year %s", DivBy: 1},
	{D: 2 * humanize.Year, Format: "2 years %s", DivBy: 1},
	{D: humanize.LongTime, Format: "%d years %s", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "a long while %s", DivBy: 1},
}

// NameColor returns the hex colour a theme name is always drawn with.
func NameColor(name string) string {
	colorRangeX := len(nameColors)
	colorRangeY := len(nameColors[0])

	hasher := fnv.New32a()
	hasher.Write([]byte(name))
	hash := hasher.Sum32() + nameColorHashSalt
	n := colorRangeX * colorRangeY
	idx := hash % uint32(n)
	x := int(idx) / colorRangeX
	y := int(idx) - (x * colorRangeY)
	return nameColors[x][y]
}

// ColoredName renders name in its stable colour.
func ColoredName(name string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(NameColor(name))).Render(name)
}

func colorGrid(xSteps, ySteps int) [][]string {
	x0y0, _ := colorful.Hex("#F25D94")
	x1y0, _ := colorful.Hex("#EDFF82")
	x0y1, _ := colorful.Hex("#643AFF")
	x1y1, _ := colorful.Hex("#14F9D5")

	x0 := make([]colorful.Color, ySteps)
	for i := range x0 {
		x0[i] = x0y0.BlendLuv(x0y1, float64(i)/float64(ySteps))
	}

	x1 := make([]colorful.Color, ySteps)
	for i := range x1 {
		x1[i] = x1y0.BlendLuv(x1y1, float64(i)/float64(ySteps))
	}

	grid := make([][]string, ySteps)
	for x := 0; x < ySteps; x++ {
		y0 := x0[x]
		grid[x] = make([]string, xSteps)
		for y := 0; y < xSteps; y++ {
			grid[x][y] = y0.BlendLuv(x1[x], float64(y)/float64(xSteps)).Hex()
		}
	}

	return grid
}
