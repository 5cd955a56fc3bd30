package tree_test

import (
	"fmt"

	"github.com/matzehuels/netdraw/pkg/network"
	"github.com/matzehuels/netdraw/pkg/tree"
)

func ExampleBuild() {
	// An ONU feeding a switch, plus an unrelated router listed first
	set, _ := network.NewSetFrom(
		network.Node{ID: "RT1", Name: "Router"},
		network.Node{ID: "ONU", Name: "ONU"},
		network.Node{ID: "SW1", Name: "Switch", Parents: []string{"ONU"}},
	)

	f := tree.Build(set)
	fmt.Println("Roots:", f.Roots)
	fmt.Println("Children of ONU:", f.ChildrenOf("ONU"))
	fmt.Println("Primary parent of SW1:", f.PrimaryParent["SW1"])
	// Output:
	// Roots: [ONU RT1]
	// Children of ONU: [SW1]
	// Primary parent of SW1: ONU
}

func ExampleForest_Validate() {
	set, _ := network.NewSetFrom(
		network.Node{ID: "A", Parents: []string{"B"}},
		network.Node{ID: "B", Parents: []string{"A"}},
	)

	err := tree.Build(set).Validate()
	fmt.Println(err)
	// Output:
	// CYCLE: primary parents form a cycle: A -> B -> A
}
