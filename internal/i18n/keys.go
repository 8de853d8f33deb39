// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess     = "success"
	KeyError       = "error"
	KeyRateLimited = "rate_limited"
	KeyInternal    = "internal_error"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Reviews
	KeyReviewCreated  = "review.created"
	KeyReviewVoted    = "review.voted"
	KeyReviewNotFound = "review.not_found"

	// Favorites
	KeyFavoriteAdded   = "favorite.added"
	KeyFavoriteRemoved = "favorite.removed"
	KeyFavoriteNoUser  = "favorite.no_user"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Search
	KeySearchNoResults    = "search.no_results"
	KeySearchResultsFound = "search.results_found"
)
