package generate

import (
	"fmt"
	"strings"

	"github.com/ByLCY/coverstudio/book"
)

// MaxReferences 是随请求发送的参考图上限。
const MaxReferences = 2

type layoutRule struct {
	structure string
	concept   string
}

var layoutRules = map[string]layoutRule{
	"abstract":         {"ABSTRACT GEOMETRIC PATTERNS ONLY. NO characters, NO realistic scenes. Use shapes, lines, and gradients.", "Professional Corporate abstract art."},
	"minimal":          {"EXTREME NEGATIVE SPACE (80%). Single tiny iconic subject in center. Solid flat background.", "Modern Minimalist Design."},
	"symbolic":         {"SINGLE CENTRAL SYMBOLIC OBJECT. One distinct object placed perfectly in the center. SOLID or SIMPLE GRADIENT BACKGROUND. NO complex scenery, NO full characters.", "Iconic, Symbolic, Minimalist, Emblem style."},
	"solid_cutout":     {"SOLID FLAT COLOR BACKGROUND with a sharp CUTOUT subject in foreground. No background details.", "Pop Art / Poster style."},
	"solid_color":      {"SOLID FLAT COLOR BACKGROUND ONLY. NO characters, NO objects, NO texture.", "Pure solid color background."},
	"split_vertical":   {"VERTICAL SPLIT SCREEN (50/50). Left side = Scene A, Right side = Scene B.", "Duality theme."},
	"split_horizontal": {"HORIZONTAL SPLIT SCREEN. Top half = Sky/Macro, Bottom half = Landscape/Character.", "Movie Poster style."},
	"four_panel":       {"4-PANEL COMIC STRIP. Image is divided into 4 rectangular frames.", "Manga page layout."},
	"film_strip":       {"VERTICAL FILM STRIP. 3-4 frames stacked vertically with film sprocket holes on sides.", "Cinematic sequence."},
	"collage_photo":    {"PHOTOMONTAGE COLLAGE. Multiple overlapping cutouts, torn paper edges.", "Mixed media art."},
	"vintage":          {"VINTAGE BOOK FRAME. Decorative ornamental border around the edges.", "Antique paper texture."},
}

var defaultLayout = layoutRule{"Full page vertical illustration.", "Cinematic Composition."}

var compositionRules = map[string]string{
	"center":         "Center-focused composition. Symmetrical.",
	"rule_of_thirds": "Rule of Thirds. Focal point at grid intersection.",
	"diagonal":       "Diagonal dynamic composition.",
	"negative_space": "High Negative Space (Top 40% empty).",
	"golden_ratio":   "Golden Ratio Spiral composition.",
	"dutch_angle":    "Dutch Angle (Tilted camera).",
}

var artStyles = map[string]string{
	"anime":          "Japanese Anime Style. Cel-shaded, sharp lines, vibrant colors.",
	"scenic-anime":   "High-quality Scenic Anime Style. Hyper-detailed clouds, dramatic lighting, lens flares.",
	"fantasy":        "Nostalgic Japanese Fantasy Animation Style. Soft gouache textures, painted backgrounds.",
	"watercolor":     "Traditional Watercolor Painting. Wet-on-wet technique, visible paper texture, soft bleeding edges.",
	"oil":            "Impasto Oil Painting. Thick visible brushstrokes, textured canvas.",
	"flat":           "Vector Flat Design. No gradients, clean shapes, corporate illustration.",
	"pixel":          "Pixel Art. 16-bit retro game style, low resolution aesthetic.",
	"cyberpunk":      "Cyberpunk Concept Art. Neon lights, dark rain, chrome, futuristic.",
	"3d":             "High-quality 3D Character Render. Smooth surfaces, soft lighting.",
	"childrens":      "Children's Picture Book Illustration. Soft pastels or crayons, friendly rounded shapes.",
	"hand-drawn":     "Rough Pencil Sketch. Graphite texture, white background, unpolished.",
	"colored-pencil": "Colored Pencil Illustration. Visible cross-hatching lines, rough paper grain texture.",
	"ukiyo-e":        "Traditional Japanese Woodblock Print. Flat colors, thick black outlines, textured paper.",
	"ink":            "Sumi-e Ink Wash Painting. High contrast black and white.",
	"realistic":      "Hyper-realistic 8k photography style.",
	"charcoal":       "Charcoal Sketch. Smudged, dark, expressive.",
	"paper":          "Paper Cutout Art. Layered paper depth, drop shadows.",
}

// IgnoresCharacters 判断该版式是否忽略人物描述与参考图。
func IgnoresCharacters(designLayout string) bool {
	switch designLayout {
	case "abstract", "solid_color", "symbolic":
		return true
	}
	return false
}

func colorRule(cfg book.Config) string {
	switch cfg.ColorCount {
	case "grayscale":
		return "STRICT COLOR: GRAYSCALE ONLY. Black, White, Grey. NO COLORS."
	case "single-color":
		return "STRICT COLOR: MONOCHROMATIC. Use variations of ONE single Hue only."
	case "2-colors":
		return "STRICT COLOR: DUOTONE. Only 2 dominant colors."
	}
	if cfg.ColorTone != "" && cfg.ColorTone != "auto" {
		return fmt.Sprintf("Color Tone: %s palette.", cfg.ColorTone)
	}
	return ""
}

func referenceRule(cfg book.Config, refs int) string {
	switch {
	case refs <= 0 || IgnoresCharacters(cfg.DesignLayout):
		return ""
	case refs == 1:
		return fmt.Sprintf("**REFERENCE IMAGE INSTRUCTION (HIGHEST PRIORITY)**: The attached image shows the DEFINITIVE appearance of the main character. Keep hair, eyes, face shape and clothing, adapted to the [%s] art style.", cfg.ArtStyle)
	default:
		return fmt.Sprintf("**MULTI-REFERENCE MODE (2 DISTINCT SUBJECTS)**: Image 1 is the first character, Image 2 is the second. Include BOTH as separate people, DO NOT BLEND them, adapted to the [%s] art style.", cfg.ArtStyle)
	}
}

// BuildPrompt 按版式、构图、氛围、光照、画风与配色规则拼出提示词。
// refs 为实际随请求发送的参考图数量。
func BuildPrompt(cfg book.Config, refs int) string {
	layout, ok := layoutRules[cfg.DesignLayout]
	if !ok {
		layout = defaultLayout
	}
	comp, ok := compositionRules[cfg.Composition]
	if !ok {
		comp = "Balanced composition."
	}
	mood := cfg.Mood
	if mood == "" {
		mood = "Cinematic"
	}
	lighting := "Professional lighting"
	if cfg.Lighting != "" && cfg.Lighting != "none" {
		lighting = cfg.Lighting + " lighting"
	}
	art, ok := artStyles[cfg.ArtStyle]
	if !ok {
		art = artStyles["anime"]
	}

	var b strings.Builder
	b.WriteString("Create a professional E-Book Cover Illustration.\n\n")
	b.WriteString("CRITICAL INSTRUCTIONS:\n")
	fmt.Fprintf(&b, "1. **STRUCTURAL LAYOUT (HIGHEST PRIORITY)**: IMAGE STRUCTURE: %s\n", layout.structure)
	b.WriteString("2. **NO TEXT**: Textless image.\n")
	fmt.Fprintf(&b, "3. **ART STYLE**: %s\n", art)
	fmt.Fprintf(&b, "4. **COLORS**: %s\n", colorRule(cfg))
	if ref := referenceRule(cfg, refs); ref != "" {
		b.WriteString(ref + "\n")
	}
	b.WriteString("\n**VISUAL DESCRIPTION**:\n")
	fmt.Fprintf(&b, "- **Layout Concept**: %s\n", layout.concept)
	fmt.Fprintf(&b, "- **Composition**: %s\n", comp)
	fmt.Fprintf(&b, "- **Mood**: %s\n", mood)
	fmt.Fprintf(&b, "- **Lighting**: %s\n", lighting)
	b.WriteString("\n**SUBJECT / CONTENT**:\n")
	fmt.Fprintf(&b, "- Genre: %s\n", cfg.Genre)
	fmt.Fprintf(&b, "- Synopsis: %s\n", cfg.Synopsis)
	if IgnoresCharacters(cfg.DesignLayout) {
		b.WriteString("(IGNORE specific character details in the prompt. Focus on the central symbolic object or abstract theme based on the synopsis/genre.)\n")
	} else {
		fmt.Fprintf(&b, "- Characters Description: %s\n", cfg.Characters)
	}
	b.WriteString("\nPortrait 9:16 framing. High quality, 8k resolution, masterpiece.\n")
	return b.String()
}
