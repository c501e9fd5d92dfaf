package search_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/layer"
	"github.com/matzehuels/comparator/pkg/search"
	"github.com/matzehuels/comparator/pkg/state"
)

func ExampleSearcher_Search() {
	n := 4
	cfg, err := config.New(config.File{States: &n, Target: []int{0, 0, 0, 0}})
	if err != nil {
		panic(err)
	}

	a := layer.New(state.FromInts([]int{1, 1, 2, 3}), "A")
	b := layer.New(state.FromInts([]int{3, 2, 2, 1}), "B")
	c := layer.New(state.FromInts([]int{3, 0, 0, 3}), "C")
	a.Children = []int{1}
	b.Children = []int{2}

	s, err := search.New(cfg, layer.Collection{a, b, c})
	if err != nil {
		panic(err)
	}
	res := s.Search(context.Background())
	fmt.Println(res.Status, res.Path, res.Output)
	// Output: found [0 1 2] [0 0 0 0]
}
