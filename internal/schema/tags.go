package schema

import (
	"fmt"
	"strings"

	"github.com/alfatraining/structtag"
)

// fieldTags is a parsed struct tag. Order is preserved when it is written back.
type fieldTags []*structtag.Tag

func parseTags(raw string) (fieldTags, error) {
	tags, err := structtag.Parse(raw)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		return nil, nil
	}
	return fieldTags(tags.Tags()), nil
}

// get returns the name part of key's value and its comma separated options.
func (t fieldTags) get(key string) (name string, opts []string, ok bool) {
	for _, tag := range t {
		if tag.Key == key {
			parts := strings.Split(tag.Value, ",")
			return parts[0], parts[1:], true
		}
	}
	return "", nil, false
}

func (t fieldTags) without(key string) fieldTags {
	var out fieldTags
	for _, tag := range t {
		if tag.Key != key {
			out = append(out, tag)
		}
	}
	return out
}

// with sets key to value, replacing an existing entry in place.
func (t fieldTags) with(key, value string) fieldTags {
	out := make(fieldTags, 0, len(t)+1)
	found := false
	for _, tag := range t {
		if tag.Key == key {
			out = append(out, &structtag.Tag{Key: key, Value: value})
			found = true
			continue
		}
		out = append(out, tag)
	}
	if !found {
		out = append(out, &structtag.Tag{Key: key, Value: value})
	}
	return out
}

func (t fieldTags) String() string {
	parts := make([]string, len(t))
	for i, tag := range t {
		parts[i] = tag.String()
	}
	return strings.Join(parts, " ")
}

func (t fieldTags) validate() error {
	for _, tag := range t {
		if strings.Contains(tag.Value, "`") {
			return fmt.Errorf("tag %s contains a backquote", tag.Key)
		}
	}
	return nil
}
