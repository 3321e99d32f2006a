package lo

import (
	"cmp"
)

// Cond is a conditional statement that returns the trueValue if the condition is true and the falseValue otherwise.
func Cond[T any](condition bool, trueValue, falseValue T) T {
	if condition {
		return trueValue
	}

	return falseValue
}

// Bind generates a call wrapper with the second parameter's value fixed.
func Bind[FirstParamType, ParamType, ReturnType any](secondParam ParamType, callback func(FirstParamType, ParamType) ReturnType) func(FirstParamType) ReturnType {
	return func(firstParam FirstParamType) ReturnType {
		return callback(firstParam, secondParam)
	}
}

// PanicOnErr panics if the second parameter is an error and returns the first parameter otherwise.
func PanicOnErr[T any](result T, err error) T {
	if err != nil {
		panic(err)
	}

	return result
}

// Max returns the maximum value of the collection.
func Max[T cmp.Ordered](collection ...T) T {
	var maxElem T
	if len(collection) == 0 {
		return maxElem
	}

	maxElem = collection[0]
	for _, value := range collection[1:] {
		if value > maxElem {
			maxElem = value
		}
	}

	return maxElem
}
