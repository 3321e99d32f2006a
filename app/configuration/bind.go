package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	flag "github.com/spf13/pflag"
)

var (
	durationType    = reflect.TypeOf(time.Duration(0))
	stringSliceType = reflect.TypeOf([]string(nil))
)

// BoundParameter stores the pointer and the type of values that were bound using the BindParameters function.
type BoundParameter struct {
	Name         string
	BoundPointer any
	BoundType    reflect.Type
}

// BindParameters is a utility function that allows to define and bind a set of parameters in a single step by using a
// struct as the registry and definition for the created configuration parameters. It parses the relevant information
// from the struct using reflection and optionally provided information in the tags of its fields.
//
// The parameter names are determined by the names of the fields in the struct but they can be overridden by providing a
// name tag. The default value is determined by the value of the field in the struct but it can be overridden by
// providing a default tag (only used if the field holds its zero value). The usage information is determined by the
// usage tag of the field.
//
// Nested structs translate to parameter names in the following way:
// --namespace.level1.level2.parameterName
func (c *Configuration) BindParameters(flagSet *flag.FlagSet, namespace string, pointerToStruct any) {
	val := reflect.ValueOf(pointerToStruct).Elem()
	for i := 0; i < val.NumField(); i++ {
		valueField := val.Field(i)
		typeField := val.Type().Field(i)

		name := namespace + "." + LowerCamelCase(typeField.Name)
		if tagName, exists := typeField.Tag.Lookup("name"); exists {
			name = namespace + "." + tagName
		}

		shortHand := typeField.Tag.Get("shorthand")
		usage := typeField.Tag.Get("usage")
		tagDefault, hasTagDefault := typeField.Tag.Lookup("default")
		hasTagDefault = hasTagDefault && valueField.IsZero()

		//nolint:forcetypeassert // the pointer types match the switch cases
		switch defaultValue := valueField.Interface().(type) {
		case bool:
			if hasTagDefault {
				defaultValue = mustParse(name, tagDefault, strconv.ParseBool)
			}
			flagSet.BoolVarP(valueField.Addr().Interface().(*bool), name, shortHand, defaultValue, usage)

		case int:
			if hasTagDefault {
				defaultValue = int(mustParse(name, tagDefault, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }))
			}
			flagSet.IntVarP(valueField.Addr().Interface().(*int), name, shortHand, defaultValue, usage)

		case int64:
			if hasTagDefault {
				defaultValue = mustParse(name, tagDefault, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
			}
			flagSet.Int64VarP(valueField.Addr().Interface().(*int64), name, shortHand, defaultValue, usage)

		case time.Duration:
			if hasTagDefault {
				defaultValue = mustParse(name, tagDefault, time.ParseDuration)
			}
			flagSet.DurationVarP(valueField.Addr().Interface().(*time.Duration), name, shortHand, defaultValue, usage)

		case string:
			if hasTagDefault {
				defaultValue = tagDefault
			}
			flagSet.StringVarP(valueField.Addr().Interface().(*string), name, shortHand, defaultValue, usage)

		case []string:
			if hasTagDefault && tagDefault != "" {
				defaultValue = strings.Split(tagDefault, ",")
			}
			flagSet.StringSliceVarP(valueField.Addr().Interface().(*[]string), name, shortHand, defaultValue, usage)

		default:
			if valueField.Kind() != reflect.Struct {
				panic(fmt.Sprintf("could not bind '%s' because its type %s is not supported", name, valueField.Type()))
			}

			// recursively walk the value, but do not add it as a parameter
			c.BindParameters(flagSet, name, valueField.Addr().Interface())

			continue
		}

		c.boundParameters[strings.ToLower(name)] = &BoundParameter{
			Name:         name,
			BoundPointer: valueField.Addr().Interface(),
			BoundType:    valueField.Type(),
		}
	}
}

// UpdateBoundParameters updates parameters that were bound using the BindParameters method with the current values in
// the configuration.
func (c *Configuration) UpdateBoundParameters() {
	for _, boundParameter := range c.boundParameters {
		parameterName := boundParameter.Name

		//nolint:forcetypeassert // the pointer types match the bound types
		switch boundParameter.BoundType.Kind() {
		case reflect.Bool:
			*(boundParameter.BoundPointer.(*bool)) = c.Bool(parameterName)
		case reflect.Int:
			*(boundParameter.BoundPointer.(*int)) = c.Int(parameterName)
		case reflect.Int64:
			if boundParameter.BoundType == durationType {
				*(boundParameter.BoundPointer.(*time.Duration)) = c.Duration(parameterName)
			} else {
				*(boundParameter.BoundPointer.(*int64)) = c.Int64(parameterName)
			}
		case reflect.String:
			*(boundParameter.BoundPointer.(*string)) = c.String(parameterName)
		case reflect.Slice:
			if boundParameter.BoundType == stringSliceType {
				*(boundParameter.BoundPointer.(*[]string)) = c.Strings(parameterName)
			}
		}
	}
}

// LowerCamelCase converts the given identifier to lower camel case while keeping leading acronyms intact
// (e.g. "VerifyInterval" becomes "verifyInterval" and "TTL" becomes "ttl").
func LowerCamelCase(str string) string {
	runes := []rune(str)
	runeCount := len(runes)

	if runeCount == 0 || unicode.IsLower(runes[0]) {
		return str
	}

	runes[0] = unicode.ToLower(runes[0])
	if runeCount == 1 || unicode.IsLower(runes[1]) {
		return string(runes)
	}

	for i := 1; i < runeCount; i++ {
		if i+1 < runeCount && unicode.IsLower(runes[i+1]) {
			break
		}

		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

func mustParse[T any](name string, value string, parse func(string) (T, error)) T {
	parsed, err := parse(value)
	if err != nil {
		panic(fmt.Sprintf("could not parse default value of '%s', error: %s", name, err))
	}

	return parsed
}
