package tree

import "strings"

// IsCall returns true for call expressions
func IsCall(n Node) bool {
	return n.Kind() == KindCall
}

// Callee returns callee expression of a call
func Callee(call Node) Node {
	return call.Field("function")
}

// Arguments returns call argument expressions
func Arguments(call Node) []Node {
	args := call.Field("arguments")
	if args.IsZero() {
		return nil
	}
	var result []Node
	for _, child := range args.Children() {
		if child.Kind() == KindComment {
			continue
		}
		result = append(result, child)
	}
	return result
}

// CalleeChain flattens the callee of call into identifier segments, i.e.
// supabase.from('x').select() yields [supabase from select]
func CalleeChain(call Node) []string {
	var chain []string
	collectChain(Callee(call), &chain)
	return chain
}

// CalleeName returns the last callee segment, i.e. select for db.from('x').select()
func CalleeName(call Node) string {
	chain := CalleeChain(call)
	if len(chain) == 0 {
		return ""
	}
	return chain[len(chain)-1]
}

// CalleePath returns dotted callee chain
func CalleePath(call Node) string {
	return strings.Join(CalleeChain(call), ".")
}

func collectChain(n Node, chain *[]string) {
	switch n.Kind() {
	case KindIdentifier, KindPropertyIdentifier, "this", "super", "private_property_identifier":
		*chain = append(*chain, n.Text())
	case KindMember:
		collectChain(n.Field("object"), chain)
		collectChain(n.Field("property"), chain)
	case KindCall:
		collectChain(Callee(n), chain)
	case KindAwait, KindParenthesized, KindNonNull:
		collectChain(n.FirstChild(), chain)
	case "subscript_expression":
		collectChain(n.Field("object"), chain)
	}
}

// Receiver returns the call whose result the member call is invoked on, i.e. for a.from('t').select()
// the receiver of select() is a.from('t')
func Receiver(call Node) Node {
	callee := Callee(call)
	if callee.Kind() != KindMember {
		return Node{}
	}
	object := Unwrap(callee.Field("object"))
	if object.Kind() == KindCall {
		return object
	}
	return Node{}
}

// OutermostChainCall returns the outermost call of a fluent chain containing call
func OutermostChainCall(call Node) Node {
	current := call
	for {
		parent := current.Parent()
		if parent.Kind() != KindMember {
			return current
		}
		grand := parent.Parent()
		if grand.Kind() != KindCall || !Callee(grand).Same(parent) {
			return current
		}
		current = grand
	}
}

// ChainCalls returns call followed by every call chained on its result, i.e. q.select().catch(h)
// yields [q.select(), q.select().catch(h)]
func ChainCalls(call Node) []Node {
	result := []Node{call}
	current := call
	for {
		parent := current.Parent()
		if parent.Kind() != KindMember {
			return result
		}
		grand := parent.Parent()
		if grand.Kind() != KindCall || !Callee(grand).Same(parent) {
			return result
		}
		result = append(result, grand)
		current = grand
	}
}

// Unwrap strips await, parentheses and non-null assertions; as expressions are kept, see AssertedType
func Unwrap(n Node) Node {
	for {
		switch n.Kind() {
		case KindAwait, KindParenthesized, KindNonNull:
			n = n.FirstChild()
		default:
			return n
		}
	}
}
