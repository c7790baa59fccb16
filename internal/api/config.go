package api

import (
	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/internal/config"
	"github.com/FocuswithJustin/scriptorium/internal/search"
)

// Options holds everything a Server needs.
type Options struct {
	Version string
	Corpus  *corpus.Corpus
	Index   *search.Index // nil disables mode=fts
	Server  config.ServerConfig
	Cache   config.CacheConfig
	Search  config.SearchConfig
}
