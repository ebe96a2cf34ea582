package layout

import "github.com/illustrate/illustrate/pkg/ast"

// ValidateReferences checks that every identifier referenced by a
// connection, constrain, or alignment statement names an element actually
// declared somewhere in the document, returning an UndefinedIdentifier
// error with edit-distance suggestions on the first bad reference found.
func ValidateReferences(doc ast.Document) error {
	defined := map[string]bool{}
	ast.Walk(doc.Statements, func(s ast.Statement) {
		if name := s.Name(); name != "" {
			defined[name] = true
		}
	})
	return validateStatements(doc.Statements, defined)
}

func validateStatements(stmts []ast.Statement, defined map[string]bool) error {
	for _, s := range stmts {
		if err := validateStatement(s, defined); err != nil {
			return err
		}
	}
	return nil
}

func validateStatement(s ast.Statement, defined map[string]bool) error {
	switch s.Kind {
	case ast.StmtConnection:
		if err := requireDefined(defined, s.Connection.From.Leaf()); err != nil {
			return err
		}
		return requireDefined(defined, s.Connection.To.Leaf())
	case ast.StmtConstrain:
		if err := requireDefined(defined, s.Constrain.Subject.Path.Leaf()); err != nil {
			return err
		}
		switch s.Constrain.RHS.Kind {
		case ast.RHSPropertyOffset:
			return requireDefined(defined, s.Constrain.RHS.Ref.Path.Leaf())
		case ast.RHSMidpoint:
			if err := requireDefined(defined, s.Constrain.RHS.A.Path.Leaf()); err != nil {
				return err
			}
			return requireDefined(defined, s.Constrain.RHS.B.Path.Leaf())
		case ast.RHSContains:
			for _, e := range s.Constrain.RHS.Elements {
				if err := requireDefined(defined, e.Leaf()); err != nil {
					return err
				}
			}
		}
	case ast.StmtAlignment:
		if err := requireDefined(defined, s.Alignment.Left.Path.Leaf()); err != nil {
			return err
		}
		return requireDefined(defined, s.Alignment.Right.Path.Leaf())
	case ast.StmtLayout:
		return validateStatements(s.Layout.Children, defined)
	case ast.StmtGroup:
		return validateStatements(s.Group.Children, defined)
	case ast.StmtLabel:
		if s.Label.Inner != nil {
			return validateStatement(*s.Label.Inner, defined)
		}
	}
	return nil
}

func requireDefined(defined map[string]bool, name string) error {
	if defined[name] {
		return nil
	}
	return &Error{Kind: ErrUndefinedIdentifier, Name: name, Suggestions: findSimilar(defined, name, 2)}
}

// levenshteinDistance computes the edit distance between a and b.
func levenshteinDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	m, n := len(ar), len(br)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := dp[i-1][j] + 1
			ins := dp[i][j-1] + 1
			sub := dp[i-1][j-1] + cost
			dp[i][j] = min3(del, ins, sub)
		}
	}
	return dp[m][n]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// findSimilar returns up to 3 defined names within maxDistance edits of
// target, sorted by increasing distance.
func findSimilar(defined map[string]bool, target string, maxDistance int) []string {
	type candidate struct {
		name string
		dist int
	}
	var candidates []candidate
	for name := range defined {
		d := levenshteinDistance(name, target)
		if d <= maxDistance && d > 0 {
			candidates = append(candidates, candidate{name, d})
		}
	}
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j-1].dist > candidates[j].dist; j-- {
			candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
		}
	}
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}
