package prompt

import "thumbnail-server/internal/models"

// Refiner добавляет категории собственный блок уточнений к промпту.
// Регистрируется в таблице, а не в общем коде сборки: новая категория
// получает свой Refiner, не трогая Build.
type Refiner func(req models.GenerateThumbnailRequest) string

func defaultRefiners() map[models.Category]Refiner {
	return map[models.Category]Refiner{
		models.CategoryCrime: crimeRefiner,
	}
}

// crimeRefiner - дополнительные атмосферные указания для категории crime.
func crimeRefiner(models.GenerateThumbnailRequest) string {
	return `CRIME/SUSPENSE SPECIALIZED ELEMENTS:
- Noir atmosphere with dramatic lights and pronounced shadows
- Strong light/shadow contrast to build tension
- Characters with intense expressions: suspicion, fear, determination
- Investigative props: magnifying glass, physical evidence, police tape
- Mysterious silhouettes, partially hidden faces, suspicious figures
- Settings: night streets, dark rooms, investigation offices
- Color palette: dark blues, cold grays, dramatic reds, streetlight yellows
- Composition that creates suspense and immediate curiosity
- STRICTLY WITHOUT any kind of text or writing`
}
