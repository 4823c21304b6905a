// Package prompt собирает текстовый промпт для провайдера генерации
// изображений. Сборка детерминирована: один и тот же запрос всегда дает
// одну и ту же строку.
package prompt

import (
	"fmt"
	"strings"

	"thumbnail-server/internal/models"
)

// Фрагменты сцены по категориям. Для неизвестной категории используется
// ее сырое имя - новые категории не должны ломать сборку.
var categoryScenes = map[models.Category]string{
	models.CategoryGaming:        "immersive gaming environment with controllers, RGB gaming setup, dramatic action, characters in the foreground with intense expressions, vivid neon colors, dynamic motion",
	models.CategoryEducation:     "educational scene with people explaining concepts, expressive gestures, visible learning materials, positive learning atmosphere, expressions of understanding",
	models.CategoryEntertainment: "fun scene with theatrical lighting, exaggerated expressions of surprise or joy, spectacular situations, vivid colors, palpable energy, climactic moments",
	models.CategoryTechnology:    "modern technology with futuristic devices, innovative interfaces, people interacting with advanced tech, high-tech environments, modern lighting",
	models.CategoryLifestyle:     "authentic lifestyle moments with smiling people, cozy environments, everyday situations, warm colors, inviting and relaxed atmosphere",
	models.CategoryMusic:         "energetic musical performance with instruments, artists in action, rhythmic motion effects, concert lighting, visible musical energy, passionate expressions",
	models.CategoryCrime:         "noir investigative atmosphere with elements of mystery, dramatic lights, menacing shadows, suspicious characters, palpable tension, unsettling environments",
	models.CategoryDocumentary:   "serious investigative journalism with real subjects, authentic environments, credible compositions, professional atmosphere, moments of revelation",
}

const (
	realisticStyle = "ultra-realistic, photorealistic, high-definition photograph, professional cinematography, dramatic lighting"
	cartoonStyle   = "vibrant cartoon illustration, animated style, bold colors, stylized characters"

	realisticDetails = "Professional photography quality, realistic human expressions, natural lighting effects, detailed textures, authentic environments"
	cartoonDetails   = "Bold cartoon aesthetics, exaggerated expressions, bright saturated colors, stylized character designs, dynamic poses"
)

// noTextBlock - безусловный запрет на любой текст в изображении. Текст
// поверх миниатюры накладывает клиент, поэтому блок присутствует в каждом
// промпте независимо от категории.
const noTextBlock = `ABSOLUTE TEXT BAN:
- ZERO text, writing, words, letters, numbers in the image
- NO titles, NO place names, NO dates, NO captions
- NO logos, NO signs, NO boards with writing
- NO newspapers with readable headlines, NO documents with text
- The image must be PURELY VISUAL with no textual elements`

// Builder собирает промпты. Создается один раз и используется конкурентно:
// после конструирования состояние не меняется.
type Builder struct {
	refiners map[models.Category]Refiner
}

// NewBuilder возвращает Builder со стандартным набором уточнений категорий.
func NewBuilder() *Builder {
	return &Builder{refiners: defaultRefiners()}
}

// Build рендерит промпт из валидированного запроса. Валидацию вход не
// проходит повторно - за нее отвечает models.GenerateThumbnailRequest.
func (b *Builder) Build(req models.GenerateThumbnailRequest) string {
	stylePrompt := realisticStyle
	styleDetails := realisticDetails
	if req.Style == models.StyleCartoon {
		stylePrompt = cartoonStyle
		styleDetails = cartoonDetails
	}

	scene, ok := categoryScenes[req.Category]
	if !ok {
		scene = string(req.Category)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create an ultra-detailed YouTube thumbnail in %s style.\n\n", stylePrompt)
	fmt.Fprintf(&sb, "MAIN SUBJECT: %q\n", req.Title)
	if req.Description != "" {
		fmt.Fprintf(&sb, "SPECIFIC DETAILS: %s\n", req.Description)
	}
	fmt.Fprintf(&sb, "CATEGORY CONTEXT: %s\n\n", scene)

	fmt.Fprintf(&sb, `VISUAL REQUIREMENTS:
- The image must visually represent the content of %q
- Dynamic composition with clear, well-defined subjects
- Professional cinematic lighting with strong contrast
- Vivid, saturated colors that stand out in the YouTube feed
- Main subjects occupy at least 60%% of the frame
- Pronounced, emotional facial expressions if people are present
- Background kept simple so it does not distract from the subject
- 16:9 format (1280x720px), rule of thirds applied

`, req.Title)

	sb.WriteString(noTextBlock)
	sb.WriteString("\n")

	if refine, ok := b.refiners[req.Category]; ok {
		sb.WriteString("\n")
		sb.WriteString(refine(req))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nSTYLE DETAILS:\n- %s\n", styleDetails)
	fmt.Fprintf(&sb, `
FINAL GOAL:
The thumbnail must instantly communicate the content of %q through
immediately recognizable visual elements, a composition that grabs
attention in 2-3 seconds, and emotion that invites the click. It must
stay readable at small thumbnail sizes and survive feed compression.
`, req.Title)

	return sb.String()
}
