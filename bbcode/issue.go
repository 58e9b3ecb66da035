package bbcode

// Issue defines types of problems we might encounter during the tokenizing or the parsing processes.
type Issue int

const (
	// IssueUnexpectedEOL means the input ended in the middle of a tag, so the
	// scanned part of the tag was kept as plain text.
	IssueUnexpectedEOL Issue = iota

	// IssueUnknownTag occurs when a bracketed sequence does not name any [Tag].
	IssueUnknownTag

	// IssueUnclosedTag means the opening Tag has no closing counterpart before the end of the input.
	IssueUnclosedTag

	// IssueMisplacedClosingTag occurs when the closing Tag has no opened counterpart.
	IssueMisplacedClosingTag

	// IssueMisnestedTag occurs when a closing Tag matches an opened Tag which is not the
	// innermost one. The inner Tags are kept as plain text.
	IssueMisnestedTag

	// IssueInvalidAttribute occurs when the attribute value is not valid for the Tag, e.g. [list=x].
	IssueInvalidAttribute

	// IssueMissingAttribute occurs when a self-closing Tag comes without the attribute carrying its payload.
	IssueMissingAttribute

	// IssueNestingTooDeep occurs when the opening Tag would exceed [Limits.MaxDepth].
	IssueNestingTooDeep

	// IssueTagNameTooLong occurs when the tag name is longer than [Limits.MaxTagNameLen].
	IssueTagNameTooLong

	// IssueSmileChecksExhausted occurs when a text run contains more emoticon candidates than
	// [Limits.MaxSmileChecks]. The rest of the run is scanned as plain text.
	IssueSmileChecksExhausted

	// IssueUnknownAttachment occurs when an attachment tag references an ID missing from the records.
	IssueUnknownAttachment

	// IssueWarningsTruncated occurs when there are too many Warnings recorded.
	IssueWarningsTruncated

	// IssueNegativeWarningsCap reports an invalid (negative) warnings capacity.
	IssueNegativeWarningsCap

	// IssueNegativeLimit occurs during configuration when any value in [Limits] is negative.
	IssueNegativeLimit
)

var issueNames = [...]string{
	IssueUnexpectedEOL:        "unexpected_eol",
	IssueUnknownTag:           "unknown_tag",
	IssueUnclosedTag:          "unclosed_tag",
	IssueMisplacedClosingTag:  "misplaced_closing_tag",
	IssueMisnestedTag:         "misnested_tag",
	IssueInvalidAttribute:     "invalid_attribute",
	IssueMissingAttribute:     "missing_attribute",
	IssueNestingTooDeep:       "nesting_too_deep",
	IssueTagNameTooLong:       "tag_name_too_long",
	IssueSmileChecksExhausted: "smile_checks_exhausted",
	IssueUnknownAttachment:    "unknown_attachment",
	IssueWarningsTruncated:    "warnings_truncated",
	IssueNegativeWarningsCap:  "negative_warnings_cap",
	IssueNegativeLimit:        "negative_limit",
}

// String returns snake_case name of the Issue, suitable for JSON responses.
func (i Issue) String() string {
	if i < 0 || int(i) >= len(issueNames) {
		return "unknown"
	}
	return issueNames[i]
}
