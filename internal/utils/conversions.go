package utils

import "fmt"

// ToStringSlice converts a decoded JSON array into strings.
// Every element must already be a string.
func ToStringSlice(slice []any) ([]string, error) {
	stringSlice := make([]string, 0, len(slice))
	for i, v := range slice {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not a string", i, v)
		}
		stringSlice = append(stringSlice, s)
	}
	return stringSlice, nil
}
