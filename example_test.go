package profile_test

import (
	"fmt"

	"github.com/brunoga/profile"
	"github.com/brunoga/profile/value"
)

func ExampleTraverse() {
	doc := value.MustParseObject(`{"score":10,"tags":["a"],"name":"Ann"}`)
	patch := value.MustParsePatch(`{"score":5,"visits":1}`)

	res, err := profile.Traverse(doc, patch, profile.Increment)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Target)
	fmt.Print(res.Changes)
	// Output:
	// {"score":15,"tags":["a"],"name":"Ann","visits":1}
	// score: 10 -> 15
	// visits: <absent> -> 1
}

func ExampleTraverse_delete() {
	doc := value.MustParseObject(`{"tags":["a","b","c"],"prefs":{"theme":"dark"}}`)
	patch := value.MustParsePatch(`{"tags":["$delete"],"prefs":{"theme":"$delete"}}`)

	res, _ := profile.Traverse(doc, patch, profile.Delete)

	data, _ := res.Changes.MarshalJSON()
	fmt.Println(res.Target)
	fmt.Println(string(data))
	// Output:
	// {"tags":["b","c"]}
	// {"prefs.theme":{"oldValue":"dark"},"tags":{"oldValue":["a","b","c"],"newValue":["b","c"]}}
}

func ExampleMerge() {
	doc := value.MustParseObject(`{"n":1}`)

	first, _ := profile.Traverse(doc, value.MustParsePatch(`{"n":2}`), profile.Increment)
	second, _ := profile.Traverse(doc, value.MustParsePatch(`{"n":4}`), profile.Increment)

	fmt.Print(profile.Merge(first.Changes, second.Changes))
	// Output:
	// n: 1 -> 7
}
