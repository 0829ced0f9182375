// Demo tool that prints a record view element by element
package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/robert-malhotra/go-recarray/recarray"
)

type particle struct {
	X, Y, Z float64
}

func main() {
	n := 4
	data := make([]float64, n*3)
	for i := range data {
		data[i] = float64(i)
	}

	buf, err := recarray.DenseFrom(data, n, 3)
	if err != nil {
		fmt.Printf("ERROR: building buffer: %v\n", err)
		os.Exit(1)
	}

	arr, err := recarray.New(reflect.TypeOf((*particle)(nil)).Elem(), buf)
	if err != nil {
		fmt.Printf("ERROR: wrapping buffer: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== record view ===\n")
	fmt.Printf("shape:  %v\n", arr.Shape())
	fmt.Printf("fields: %v\n", arr.FieldNames())
	fmt.Println()

	arr.Each(func(i int, rec any) bool {
		fmt.Printf("  [%d] %+v\n", i, rec)
		return true
	})

	fmt.Println()
	for _, name := range arr.FieldNames() {
		s, err := arr.FieldByName(name)
		if err != nil {
			fmt.Printf("ERROR: field %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("%s block:", name)
		for i := 0; i < s.Len(); i++ {
			v, _ := s.Get(i)
			fmt.Printf(" %v", v)
		}
		fmt.Println()
	}
}
