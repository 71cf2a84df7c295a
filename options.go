package rankdex

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver   string
	path     string
	addrs    []string
	username string
	password string
	db       int

	indexName      string
	language       string
	rerankLanguage string

	preserve []string
	replace  map[string]string
	keepEnye *bool

	stopwordsAdd    []string
	stopwordsRemove []string

	rerankPool      int
	rerankCeiling   int
	cacheSize       int
	forceNormalized bool
}

// WithBleve selects the embedded bleve engine. An empty path keeps the
// index in memory.
func WithBleve(path string) Option {
	return func(c *clientConfig) {
		c.driver = "bleve"
		c.path = path
	}
}

// WithRedis selects the RediSearch engine.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = addrs
	}
}

// WithRedisAuth sets Redis credentials.
func WithRedisAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithRedisDB selects a logical Redis database.
func WithRedisDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithIndexName overrides the default index name ("content").
func WithIndexName(name string) Option {
	return func(c *clientConfig) {
		c.indexName = name
	}
}

// WithLanguage sets the analyzer language, e.g. "es" or "pt-BR".
func WithLanguage(code string) Option {
	return func(c *clientConfig) {
		c.language = code
	}
}

// WithRerankLanguage pins the title-comparison language independently of
// the index language. "auto" follows the index language.
func WithRerankLanguage(code string) Option {
	return func(c *clientConfig) {
		c.rerankLanguage = code
	}
}

// WithFolding adds accent-folding rules on top of the per-language
// defaults: preserve keeps characters as-is, replace maps them before the
// diacritic strip.
func WithFolding(preserve []string, replace map[string]string) Option {
	return func(c *clientConfig) {
		c.preserve = preserve
		c.replace = replace
	}
}

// WithKeepEnye forces "ñ" into (true) or out of (false) the folding
// profile regardless of language defaults.
func WithKeepEnye(keep bool) Option {
	return func(c *clientConfig) {
		c.keepEnye = &keep
	}
}

// WithStopwords adjusts the comparison-tokenizer stopword set.
func WithStopwords(add, remove []string) Option {
	return func(c *clientConfig) {
		c.stopwordsAdd = add
		c.stopwordsRemove = remove
	}
}

// WithPoolSize fixes the rerank candidate pool and its ceiling. Zero
// values keep the page-size-derived defaults.
func WithPoolSize(pool, ceiling int) Option {
	return func(c *clientConfig) {
		c.rerankPool = pool
		c.rerankCeiling = ceiling
	}
}

// WithCacheSize bounds the normalization memo tables.
func WithCacheSize(n int) Option {
	return func(c *clientConfig) {
		c.cacheSize = n
	}
}

// WithNormalizedFields forces querying the pre-folded *_norm fields even
// on engines that fold at analysis time.
func WithNormalizedFields() Option {
	return func(c *clientConfig) {
		c.forceNormalized = true
	}
}
