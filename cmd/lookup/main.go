// Command lookup builds lookup tables from vocabulary files and queries them.
//
//	lookup load tables.yaml
//	lookup find --manifest tables.yaml --table words --default -1 cat dog
//	lookup export -m tables.yaml -t words --format arrow -o words.arrow
//	lookup reduce-join --shape 2,3 --axes 1 --separator - a b c d e f
//	lookup encode ab xyz
//	lookup decode --width 12 <base64>
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
