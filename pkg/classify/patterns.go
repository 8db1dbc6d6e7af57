package classify

import "regexp"

// Narrative shapes, one per recognized posting kind. Extend these tables
// when a ParseError shows a shape the bank has started emitting.
var (
	// "Transfer to Savings Acct 12345678"
	transferToPattern = regexp.MustCompile(`^Transfer to .*?(\d{8})\b`)

	// "Ext TFR - NET# 12345678 to 987654321 J Citizen NETBANK - fee free"
	extTransferPattern = regexp.MustCompile(`^Ext TFR - NET# (\w+) to (\d+) (.+?) [A-Z]{2,} - `)

	// "Net tfr to acct 12345678. Rec No.: 000123456, processed"
	netTransferPattern = regexp.MustCompile(`^Net tfr to \S+ (\d{8})\. Rec No\.: (\w+),`)

	// "Osko Payment To Jane Doe jane@example.com Ref#555000111"
	oskoToPattern = regexp.MustCompile(`^Osko Payment To (.+) \S+ Ref#(\w+)`)

	// "Direct Debit Insurance Co - policy 889"
	directDebitPattern = regexp.MustCompile(`^Direct Debit (.+?) - `)

	// "Osko Payment From John Smith"
	oskoFromPattern = regexp.MustCompile(`^Osko Payment From (.+)$`)

	// "Direct Credit Employer Pty Ltd - payroll"
	directCreditPattern = regexp.MustCompile(`^Direct Credit (.+?) - `)

	// "Internet BPay to Energy Co - Biller Code 12345 - Receipt No 987654321"
	bpayPattern = regexp.MustCompile(`^Internet BPay to (.+?) - Biller Code (\d+) - Receipt No (\w+)`)

	// "VISA-CLOUDFLARE HTTPSWWW.CLOUUSFRGN ..." — payee runs to the first
	// " HTTP", " WWW" or "#".
	visaPattern = regexp.MustCompile(`VISA(?: Refund)?-(.+?)(?: HTTP| WWW|#)`)

	// "... (Ref.0123456789)" anywhere in a card narrative.
	cardRefPattern = regexp.MustCompile(`Ref\.(\d+)`)
)
