// Command sszdump decodes a hex-encoded SSZ frame as a uint256 and reports
// its value and hash-tree-root. It accepts no other input form or type.
// It exists mainly as a manual verification aid during development.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	ssz "github.com/sszcore/ssz"
)

func main() {
	var (
		hexInput = flag.String("hex", "", "hex-encoded SSZ frame to decode as a uint256 and hash")
	)
	flag.Parse()

	if *hexInput == "" {
		fmt.Fprintln(os.Stderr, "usage: sszdump -hex <bytes>")
		os.Exit(2)
	}

	data, err := hex.DecodeString(*hexInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sszdump: invalid hex: %v\n", err)
		os.Exit(1)
	}

	var value ssz.Uint256
	if err := ssz.Unmarshal(data, &value); err != nil {
		fmt.Fprintf(os.Stderr, "sszdump: unmarshal: %v\n", err)
		os.Exit(1)
	}

	root, err := ssz.HashTreeRoot(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sszdump: hash_tree_root: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("value:          %s\n", value.Int().String())
	fmt.Printf("hash_tree_root: %s\n", hex.EncodeToString(root[:]))
}
