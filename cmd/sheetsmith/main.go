// Command sheetsmith generates, inspects and tracks sample Excel workbooks.
package main

func main() {
	Execute()
}
