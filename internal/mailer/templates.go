package mailer

import (
	"fmt"
	"strings"
	"time"
)

type DownloadLink struct {
	ProductName string    `json:"product_name"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func OrderConfirmationSubject(reference string) string {
	return fmt.Sprintf("Order %s received", reference)
}

// OrderConfirmationHTML renders the customer confirmation. The body varies by
// payment method: online payment CTA, bank transfer details block, or a
// pay-on-delivery notice.
func OrderConfirmationHTML(name, reference, paymentMethod string, total float64, trackURL string, bankDetails map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thank you for your order, %s!</h2>", name)
	fmt.Fprintf(&b, "<p>Your order <strong>%s</strong> has been received.</p>", reference)
	fmt.Fprintf(&b, "<p>Total: <strong>%.2f</strong></p>", total)

	switch paymentMethod {
	case "pay_online":
		b.WriteString("<p>Your payment is being processed. You will receive a follow-up email once it is confirmed.</p>")
	case "bank_transfer":
		b.WriteString("<h3>Bank transfer details</h3><ul>")
		for _, key := range []string{"bank_name", "account_holder", "iban", "reference"} {
			if v := bankDetails[key]; v != "" {
				fmt.Fprintf(&b, "<li>%s: %s</li>", strings.ReplaceAll(key, "_", " "), v)
			}
		}
		b.WriteString("</ul><p>Please include your order reference with the transfer.</p>")
	default:
		b.WriteString("<p>You can pay on delivery.</p>")
	}

	if trackURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Track your order</a></p>`, trackURL)
	}
	return b.String()
}

func StatusUpdateSubject(reference, status string) string {
	return fmt.Sprintf("Order %s is now %s", reference, status)
}

func StatusUpdateHTML(name, reference, status string, bankDetails map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Hi %s,</h2>", name)
	fmt.Fprintf(&b, "<p>Your order <strong>%s</strong> is now <strong>%s</strong>.</p>", reference, status)

	if status == "accepted" && len(bankDetails) > 0 {
		b.WriteString("<h3>Bank transfer details</h3><ul>")
		for _, key := range []string{"bank_name", "account_holder", "iban", "reference"} {
			if v := bankDetails[key]; v != "" {
				fmt.Fprintf(&b, "<li>%s: %s</li>", strings.ReplaceAll(key, "_", " "), v)
			}
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

func DownloadLinksSubject(reference string) string {
	return fmt.Sprintf("Your downloads for order %s", reference)
}

func DownloadLinksHTML(name string, links []DownloadLink) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Hi %s,</h2>", name)
	b.WriteString("<p>Your purchase is ready. Download your files below:</p><ul>")
	for _, link := range links {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> (available until %s)</li>`,
			link.URL, link.ProductName, link.ExpiresAt.Format("2 Jan 2006"))
	}
	b.WriteString("</ul><p>Each link allows a limited number of downloads.</p>")
	return b.String()
}

func AdminOrderSubject(reference string) string {
	return fmt.Sprintf("New order %s", reference)
}

func AdminOrderHTML(reference, customerName, paymentMethod string, total float64, notes string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New order %s</h2>", reference)
	fmt.Fprintf(&b, "<p>Customer: %s</p>", customerName)
	fmt.Fprintf(&b, "<p>Payment method: %s</p>", paymentMethod)
	fmt.Fprintf(&b, "<p>Total: %.2f</p>", total)
	fmt.Fprintf(&b, "<p>Notes: %s</p>", notes)
	return b.String()
}

func AdminDownloadsHTML(reference string, links []DownloadLink) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Download links issued for order %s</h2>", reference)
	b.WriteString("<p>Keep for manual resend:</p><ul>")
	for _, link := range links {
		fmt.Fprintf(&b, `<li>%s: <a href="%s">%s</a></li>`, link.ProductName, link.URL, link.URL)
	}
	b.WriteString("</ul>")
	return b.String()
}
