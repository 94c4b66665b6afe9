// jgrab reports the class name and dependency directives of Java source.
package main

import "github.com/mvp-joe/jgrab/internal/cli"

func main() {
	cli.Execute()
}
