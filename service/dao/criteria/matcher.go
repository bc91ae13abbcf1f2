// Package criteria evaluates dao list parameters against stored records.
package criteria

import (
	"github.com/viant/flowhistory/service/dao"
)

// FilterByEncoding returns true when the record encoding satisfies every
// Encoding parameter. Unknown parameters are ignored.
func FilterByEncoding(encoding string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != dao.ParameterEncoding {
			continue
		}
		if !matches(encoding, parameter.Value) {
			return false
		}
	}
	return true
}

// Matches applies FilterByEncoding to a record.
func Matches(record *dao.Record, parameters []*dao.Parameter) bool {
	return record != nil && FilterByEncoding(record.Encoding, parameters)
}

func matches(value string, expected interface{}) bool {
	switch actual := expected.(type) {
	case string:
		return value == actual
	case []string:
		for _, s := range actual {
			if value == s {
				return true
			}
		}
		return false
	}
	return true
}
