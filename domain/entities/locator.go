package entities

import (
	"fmt"
	"strings"
)

// Lookup strategies understood by every browser backend. Values match the
// WebDriver wire names.
const (
	ByID              = "id"
	ByXPath           = "xpath"
	ByLinkText        = "link text"
	ByPartialLinkText = "partial link text"
	ByName            = "name"
	ByTagName         = "tag name"
	ByClassName       = "class name"
	ByCSSSelector     = "css selector"
)

// Locator describes how to find an element
type Locator struct {
	By    string `json:"by"`
	Value string `json:"value"`
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}

// ID - locator by element id
func ID(id string) Locator { return Locator{By: ByID, Value: id} }

// XPath - locator by xpath expression
func XPath(expr string) Locator { return Locator{By: ByXPath, Value: expr} }

// ClassName - locator by a single class name
func ClassName(name string) Locator { return Locator{By: ByClassName, Value: name} }

// CSS - locator by css selector
func CSS(selector string) Locator { return Locator{By: ByCSSSelector, Value: selector} }

// TagName - locator by tag name
func TagName(tag string) Locator { return Locator{By: ByTagName, Value: tag} }

// LinkText - locator by exact link text
func LinkText(text string) Locator { return Locator{By: ByLinkText, Value: text} }

// XPathLiteral quotes s as an XPath string literal
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+part+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// ToXPath translates a locator into an equivalent XPath expression. Relative
// expressions are anchored at the context node. CSS selectors have no
// translation.
func ToXPath(l Locator, relative bool) (string, bool) {
	prefix := "//"
	if relative {
		prefix = ".//"
	}
	v := XPathLiteral(l.Value)
	switch l.By {
	case ByXPath:
		return l.Value, true
	case ByID:
		return prefix + "*[@id=" + v + "]", true
	case ByName:
		return prefix + "*[@name=" + v + "]", true
	case ByClassName:
		return prefix + "*[contains(concat(' ', normalize-space(@class), ' '), " + XPathLiteral(" "+l.Value+" ") + ")]", true
	case ByTagName:
		return prefix + l.Value, true
	case ByLinkText:
		return prefix + "a[normalize-space(.)=" + v + "]", true
	case ByPartialLinkText:
		return prefix + "a[contains(., " + v + ")]", true
	default:
		return "", false
	}
}
