package quotes

import (
	"fmt"
	"html/template"
	"strings"
)

var emailTemplate = template.Must(template.New("quote_email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #1a3c6e; padding: 24px; border-radius: 8px 8px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 22px;">New Quote Request</h1>
	</div>
	<div style="background: #fff; padding: 24px; border: 1px solid #eee; border-top: none; border-radius: 0 0 8px 8px;">
		<h2 style="font-size: 16px; border-bottom: 2px solid #1a3c6e; padding-bottom: 8px;">Contact</h2>
		<p style="margin: 4px 0;"><strong>Name:</strong> {{.FullName}}</p>
		{{if .Company}}<p style="margin: 4px 0;"><strong>Company:</strong> {{.Company}}</p>{{end}}
		<p style="margin: 4px 0;"><strong>Email:</strong> {{.Email}}</p>
		<p style="margin: 4px 0;"><strong>Phone:</strong> {{.Phone}}</p>
		{{if .Country}}<p style="margin: 4px 0;"><strong>Country:</strong> {{.Country}}</p>{{end}}

		<h2 style="font-size: 16px; border-bottom: 2px solid #1a3c6e; padding-bottom: 8px;">{{.TypeLabel}} Quote</h2>
		{{if .Products}}
		<table style="width: 100%; border-collapse: collapse; margin: 12px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 8px; text-align: left;">Part</th>
					<th style="padding: 8px; text-align: left;">OEM SKU</th>
					<th style="padding: 8px; text-align: center;">Qty</th>
				</tr>
			</thead>
			<tbody>
			{{range .Products}}
				<tr>
					<td style="padding: 8px; border-bottom: 1px solid #eee;">{{.Name}}{{if .Description}}<br><span style="color: #666; font-size: 12px;">{{.Description}}</span>{{end}}</td>
					<td style="padding: 8px; border-bottom: 1px solid #eee; font-family: monospace;">{{.OEMSku}}</td>
					<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: center;">{{.Quantity}}</td>
				</tr>
			{{end}}
			</tbody>
		</table>
		{{else}}
		<p style="margin: 4px 0;"><strong>Services:</strong> {{.ServiceLabels}}</p>
		<p style="margin: 4px 0;">{{.ServiceDescription}}</p>
		{{end}}

		{{if .AttachmentURLs}}
		<h2 style="font-size: 16px; border-bottom: 2px solid #1a3c6e; padding-bottom: 8px;">Attachments</h2>
		<ul>
		{{range .AttachmentURLs}}<li><a href="{{.}}">{{.}}</a></li>{{end}}
		</ul>
		{{end}}

		<p style="font-size: 12px; color: #999; margin-top: 24px;">Submitted {{.SubmittedAt}} from {{.ClientIP}}</p>
	</div>
</body>
</html>`))

type emailData struct {
	FullName           string
	Company            string
	Email              string
	Phone              string
	Country            string
	TypeLabel          string
	Products           []ProductItem
	ServiceLabels      string
	ServiceDescription string
	AttachmentURLs     []string
	SubmittedAt        string
	ClientIP           string
}

func renderEmail(req QuoteRequest, meta RequestMeta) (string, error) {
	data := emailData{
		FullName:           req.FullName,
		Company:            req.Company,
		Email:              req.Email,
		Phone:              fullPhone(req),
		Country:            req.Country,
		TypeLabel:          typeLabel(req.QuoteType),
		ServiceDescription: req.ServiceDescription,
		AttachmentURLs:     req.AttachmentURLs,
		SubmittedAt:        meta.SubmittedAt,
		ClientIP:           meta.ClientIP,
	}
	if req.QuoteType == QuoteTypeProducts {
		data.Products = req.Products
	} else {
		data.ServiceLabels = strings.Join(serviceLabels(req.Services), ", ")
	}

	var buf strings.Builder
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering quote email: %w", err)
	}
	return buf.String(), nil
}

func emailSubject(req QuoteRequest) string {
	return fmt.Sprintf("New %s quote request from %s", typeLabel(req.QuoteType), req.FullName)
}

func typeLabel(t QuoteType) string {
	if t == QuoteTypeServices {
		return "Services"
	}
	return "Products"
}

func fullPhone(req QuoteRequest) string {
	code := strings.TrimSpace(req.CountryCode)
	phone := strings.TrimSpace(req.Phone)
	if code == "" {
		return phone
	}
	return code + " " + phone
}
