package stream

import "github.com/khoahotran/bunny-go/pkg/bunny/result"

// Status codes each Stream operation recognizes. The sets differ per
// endpoint on purpose; anything not listed classifies as result.Undefined.
var (
	getVideoTable        = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	videoStatisticsTable = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	listVideosTable      = result.Recognize(result.OK, result.Unauthorized, result.InternalServerError)
	createVideoTable     = result.Recognize(result.OK, result.Unauthorized, result.InternalServerError)
	fetchVideoTable      = result.Recognize(result.OK, result.BadRequest, result.Unauthorized, result.NotFound, result.InternalServerError)

	getCollectionTable    = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	listCollectionsTable  = result.Recognize(result.OK, result.Unauthorized, result.InternalServerError)
	createCollectionTable = result.Recognize(result.OK, result.Unauthorized, result.InternalServerError)

	updateVideoTable   = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	deleteVideoTable   = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	uploadVideoTable   = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	heatmapTable       = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	reencodeTable      = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	setThumbnailTable  = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	addCaptionTable    = result.Recognize(result.OK, result.BadRequest, result.Unauthorized, result.NotFound, result.InternalServerError)
	deleteCaptionTable = result.Recognize(result.OK, result.BadRequest, result.Unauthorized, result.NotFound, result.InternalServerError)

	updateCollectionTable = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
	deleteCollectionTable = result.Recognize(result.OK, result.Unauthorized, result.NotFound, result.InternalServerError)
)
