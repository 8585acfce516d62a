package ast

import "reflect"

// Walk calls fn for every node reachable from root in field order, parents
// before children. Returning false from fn skips that node's children.
func Walk(root Node, fn func(Node) bool) {
	if root == nil || fn == nil {
		return
	}
	walkNode(root, fn, make(map[Node]struct{}))
}

// CountNodes returns the number of distinct nodes reachable from root.
func CountNodes(root Node) int {
	count := 0
	Walk(root, func(Node) bool {
		count++
		return true
	})
	return count
}

func walkNode(node Node, fn func(Node) bool, visited map[Node]struct{}) {
	if node == nil {
		return
	}
	val := reflect.ValueOf(node)
	if val.Kind() == reflect.Pointer && val.IsNil() {
		return
	}
	if _, ok := visited[node]; ok {
		return
	}
	visited[node] = struct{}{}
	if !fn(node) {
		return
	}
	if val.Kind() == reflect.Pointer {
		walkValue(val.Elem(), fn, visited)
		return
	}
	walkValue(val, fn, visited)
}

func walkValue(val reflect.Value, fn func(Node) bool, visited map[Node]struct{}) {
	if !val.IsValid() {
		return
	}
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return
		}
		if val.CanInterface() {
			if node, ok := val.Interface().(Node); ok {
				walkNode(node, fn, visited)
				return
			}
		}
		walkValue(val.Elem(), fn, visited)
	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			if !val.Type().Field(i).IsExported() {
				continue
			}
			walkValue(val.Field(i), fn, visited)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			walkValue(val.Index(i), fn, visited)
		}
	}
}
