package domain

// Defaults for the embedding model and the perfume index.
const (
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultIndexName      = "perfumes"
)

// Metadata keys stored alongside every perfume vector.
const (
	FieldName            = "name"
	FieldBrand           = "brand"
	FieldGender          = "gender"
	FieldRating          = "rating_score"
	FieldOlfactoryFamily = "olfactory_family"
	FieldNotes           = "notes"
	FieldImageURL        = "image_url"
	FieldPrimarySeason   = "primary_season"
	FieldPricePerception = "price_perception"
)

// MetadataFields lists the keys requested from the index for every hit.
var MetadataFields = []string{
	FieldName,
	FieldBrand,
	FieldGender,
	FieldRating,
	FieldOlfactoryFamily,
	FieldNotes,
	FieldImageURL,
}
