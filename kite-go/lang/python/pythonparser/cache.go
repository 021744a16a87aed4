package pythonparser

import (
	spooky "github.com/dgryski/go-spooky"
	lru "github.com/hashicorp/golang-lru"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
)

// parseCacheSize specifies the max number of parsed files to cache
const parseCacheSize = 1000

var parseCache *lru.Cache

func init() {
	var err error
	parseCache, err = lru.New(parseCacheSize)
	if err != nil {
		panic(err)
	}
}

type parseEntry struct {
	mod *pythonast.Module
	err error
}

// PurgeParseCache purges the parse cache
func PurgeParseCache() {
	parseCache.Purge()
}

// --

func getCachedParse(contents []byte, mode ErrorMode) (*parseEntry, bool) {
	entry, ok := parseCache.Get(hashContents(contents, mode))
	if !ok {
		return nil, false
	}
	return entry.(*parseEntry), true
}

func cacheParse(contents []byte, mode ErrorMode, mod *pythonast.Module, err error) {
	parseCache.Add(hashContents(contents, mode), &parseEntry{mod: mod, err: err})
}

// --

func hashContents(contents []byte, mode ErrorMode) uint64 {
	return spooky.Hash64Seed(contents, uint64(mode))
}
