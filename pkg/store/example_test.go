package store_test

import (
	"fmt"
	"log"

	"github.com/ssargent/mconfig/pkg/codec"
	"github.com/ssargent/mconfig/pkg/store"
)

// ExampleBuilder demonstrates building a store, serializing it, and loading
// the produced buffer back with the same secret.
func ExampleBuilder() {
	st, err := store.NewBuilder().Secret("TACOS").Build()
	if err != nil {
		log.Fatal(err)
	}

	if _, _, err := st.Insert("Hello", codec.StringValue("World")); err != nil {
		log.Fatal(err)
	}
	if _, _, err := st.Insert("Bye", codec.Value{}); err != nil {
		log.Fatal(err)
	}

	buf := st.Bytes()
	fmt.Printf("Serialized %d bytes\n", len(buf))

	reloaded, err := store.NewBuilder().Secret("TACOS").Load(buf).Build()
	if err != nil {
		log.Fatal(err)
	}

	hello, _ := reloaded.Get("Hello")
	bye, _ := reloaded.Get("Bye")
	fmt.Printf("Hello: %s\n", hello.Or("<empty>"))
	fmt.Printf("Bye: %s\n", bye.Or("<empty>"))

	// Output:
	// Serialized 8192 bytes
	// Hello: World
	// Bye: <empty>
}
