package appwrite

import (
	"encoding/json"
	"net/url"
)

// query is one element of the queries[] parameter in Appwrite's JSON form.
type query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func limitQuery(n int) query {
	return query{Method: "limit", Values: []any{n}}
}

// withQueries appends queries[] parameters to rawURL.
func withQueries(rawURL string, queries ...query) (string, error) {
	if len(queries) == 0 {
		return rawURL, nil
	}
	values := url.Values{}
	for _, q := range queries {
		b, err := json.Marshal(q)
		if err != nil {
			return "", err
		}
		values.Add("queries[]", string(b))
	}
	return rawURL + "?" + values.Encode(), nil
}
