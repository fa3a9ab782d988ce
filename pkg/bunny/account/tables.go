package account

import (
	"net/http"

	"github.com/khoahotran/bunny-go/pkg/bunny/result"
)

// Narrowing per endpoint. Mutations answered with 204 are reported as OK.
var (
	listCountriesTable      = result.Recognize(result.OK, result.Unauthorized, result.InternalServerError)
	listRegionsTable        = result.Recognize(result.OK, result.Unauthorized, result.InternalServerError)
	listLanguagesTable      = result.Recognize(result.OK, result.Unauthorized, result.InternalServerError)
	listVideoLibrariesTable = result.Recognize(result.OK, result.Unauthorized, result.InternalServerError)
	getVideoLibraryTable    = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	addVideoLibraryTable    = result.Recognize(result.OK, result.Created, result.BadRequest, result.Unauthorized, result.InternalServerError)

	updateLibraryTable   = result.Recognize(result.OK, result.BadRequest, result.Unauthorized, result.NotFound, result.InternalServerError)
	deleteLibraryTable   = noContent(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	resetAPIKeyTable     = noContent(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	addWatermarkTable    = noContent(result.OK, result.Unauthorized, result.NotFound, result.ContentTooLarge, result.InternalServerError)
	deleteWatermarkTable = noContent(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	referrerTable        = noContent(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
)

func noContent(statuses ...result.Status) result.Table {
	return result.Recognize(statuses...).Alias(http.StatusNoContent, result.OK)
}
