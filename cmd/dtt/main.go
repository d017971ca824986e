// Command dtt parses, type checks and normalizes programs of a small
// dependently typed calculus.
package main

func main() {
	Execute()
}
