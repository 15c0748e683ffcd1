package parser

import "sort"

// maxSubCategories caps how many sub-categories are appended to a path.
const maxSubCategories = 2

// BuildPath combines the category and sub-category detections into a
// root-first path. The confidence is the mean of the contributing detections,
// and 0 for an empty path.
func (p *Parser) BuildPath(text string) Detection[[]string] {
	category, hasCategory := p.DetectCategory(text)
	subs := p.DetectSubCategories(text)

	if !hasCategory && len(subs) == 0 {
		return Detection[[]string]{Value: []string{}, Confidence: 0}
	}

	path := make([]string, 0, 1+maxSubCategories)
	var total float64

	if hasCategory {
		path = append(path, category.Name)
		total += category.Confidence
	}

	// Stable so that equal confidences keep table order.
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Confidence > subs[j].Confidence
	})
	if len(subs) > maxSubCategories {
		subs = subs[:maxSubCategories]
	}
	for _, sub := range subs {
		path = append(path, sub.Name)
		total += sub.Confidence
	}

	return Detection[[]string]{Value: path, Confidence: total / float64(len(path))}
}
