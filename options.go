package microbloom

// Option configures a Filter at construction.
type Option func(*options)

type options struct {
	hash   HashFunc
	family HashFamily
}

func defaultOptions() options {
	return options{
		hash:   XXH3,
		family: HashXXH3,
	}
}

// WithHashFamily selects one of the built-in hashes. Unknown families are
// ignored and the default is kept.
func WithHashFamily(family HashFamily) Option {
	return func(o *options) {
		if _, h, ok := ParseHashFamily(family.String()); ok {
			o.hash = h
			o.family = family
		}
	}
}

// WithHash installs a caller-supplied hash. Filters built this way report
// HashCustom and cannot be unioned, because two custom functions cannot be
// proven to agree.
func WithHash(h HashFunc) Option {
	return func(o *options) {
		if h == nil {
			return
		}
		o.hash = h
		o.family = HashCustom
	}
}
