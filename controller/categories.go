package controller

import (
	"cmsadmin/api"
	"cmsadmin/constants"
	"cmsadmin/logger"
)

// CategoryGroups is the fixed three-bucket partition of categories by
// content type. The partition is closed and exhaustive over the known
// types: every well-formed category lands in exactly one bucket, and a
// category with an unknown content type is dropped from all of them rather
// than placed in a default bucket.
type CategoryGroups struct {
	Articles     []api.Category
	Publications []api.Category
	Boutique     []api.Category
}

// Count returns the number of bucketed categories.
func (g CategoryGroups) Count() int {
	return len(g.Articles) + len(g.Publications) + len(g.Boutique)
}

// GroupCategories partitions cats by content type.
func GroupCategories(cats []api.Category) CategoryGroups {
	var groups CategoryGroups
	for _, cat := range cats {
		switch cat.ContentType {
		case constants.ContentTypeArticle:
			groups.Articles = append(groups.Articles, cat)
		case constants.ContentTypePublication:
			groups.Publications = append(groups.Publications, cat)
		case constants.ContentTypeBoutique:
			groups.Boutique = append(groups.Boutique, cat)
		default:
			logger.Get().Warn().
				Int64("id", cat.ID).
				Str("content_type", cat.ContentType).
				Msg("Dropping category with unknown content type")
		}
	}
	return groups
}
