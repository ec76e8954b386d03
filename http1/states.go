package http1

type chunkedState uint8

const (
	eChunkLength1Char chunkedState = iota
	eChunkLength
	eChunkExtension
	eChunkLengthCR
	eChunkBody
	eChunkBodyEnd
	eChunkBodyCR
	eTrailer
	eTrailerLine
	eTrailerLineCR
	eLastCR
	eDone
)

// ChunkState is the coarse position of the chunked decoder within the body.
type ChunkState uint8

const (
	// AwaitingSize means the decoder expects (or is in the middle of) a chunk-size line.
	AwaitingSize ChunkState = iota
	// ReadingData means the decoder is inside a chunk. ChunkedDecoder.Remaining tells
	// how many bytes of it are left.
	ReadingData
	// AwaitingDataCRLF means the chunk data is over and its CRLF is expected.
	AwaitingDataCRLF
	// AwaitingTrailerOrEnd means the last chunk was seen and trailer fields or the
	// final CRLF are expected.
	AwaitingTrailerOrEnd
	// Done means the body is over. No more input is consumed.
	Done
)

func (c ChunkState) String() string {
	switch c {
	case AwaitingSize:
		return "awaiting size"
	case ReadingData:
		return "reading data"
	case AwaitingDataCRLF:
		return "awaiting data CRLF"
	case AwaitingTrailerOrEnd:
		return "awaiting trailer or end"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

func (s chunkedState) public() ChunkState {
	switch s {
	case eChunkLength1Char, eChunkLength, eChunkExtension, eChunkLengthCR:
		return AwaitingSize
	case eChunkBody:
		return ReadingData
	case eChunkBodyEnd, eChunkBodyCR:
		return AwaitingDataCRLF
	case eTrailer, eTrailerLine, eTrailerLineCR, eLastCR:
		return AwaitingTrailerOrEnd
	default:
		return Done
	}
}
