package configuration

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/posflag"
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/rwlist/ierrors"
)

// lowerPosflag is a pflag provider that lower cases all flag names.
type lowerPosflag struct {
	delim   string
	flagSet *flag.FlagSet
	ko      *koanf.Koanf
}

// lowerPosflagProvider returns a provider that unflattens the flags of the FlagSet into a nested map using delim.
//
// Flags that were not changed on the command line only contribute their default value if the key does not exist in
// the given Koanf instance yet. Without a Koanf instance only changed flags are read.
func lowerPosflagProvider(flagSet *flag.FlagSet, delim string, ko *koanf.Koanf) *lowerPosflag {
	return &lowerPosflag{
		flagSet: flagSet,
		delim:   delim,
		ko:      ko,
	}
}

// Read reads the flag variables and returns a nested conf map.
func (p *lowerPosflag) Read() (map[string]interface{}, error) {
	flatMap := make(map[string]interface{})
	p.flagSet.VisitAll(func(f *flag.Flag) {
		key := strings.ToLower(f.Name)
		if !f.Changed && (p.ko == nil || p.ko.Exists(key)) {
			return
		}

		flatMap[key] = posflag.FlagVal(p.flagSet, f)
	})

	return maps.Unflatten(flatMap, p.delim), nil
}

// ReadBytes is not supported by the posflag provider.
func (p *lowerPosflag) ReadBytes() ([]byte, error) {
	return nil, ierrors.New("posflag provider does not support this method")
}

// Watch is not supported.
//
//nolint:revive
func (p *lowerPosflag) Watch(cb func(event interface{}, err error)) error {
	return ierrors.New("posflag provider does not support this method")
}
