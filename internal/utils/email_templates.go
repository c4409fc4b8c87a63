package utils

import (
	"fmt"
	"strings"

	"artesania_back_end/internal/models"
)

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
func GenerateOrderConfirmationHTML(order models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">Q%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">Q%s</td>
			</tr>`,
			item.ProductName, item.Quantity,
			item.ProductPrice.StringFixed(2), item.Subtotal.StringFixed(2)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Commande %s confirmée</h2>
		<p>Bonjour %s,</p>
		<p>Merci pour votre commande. En voici le récapitulatif :</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p>Sous-total : <strong>Q%s</strong><br>
		Livraison : <strong>Q%s</strong><br>
		Total : <strong>Q%s</strong></p>

		<p>Adresse de livraison :<br>%s<br>%s</p>

		<p style="color: #888; font-size: 12px;">Vous recevrez un email lorsque votre commande sera expédiée.</p>
	</div>
</body>
</html>`,
		order.OrderNumber, order.FullName(), items.String(),
		order.Subtotal.StringFixed(2), order.ShippingCost.StringFixed(2), order.Total.StringFixed(2),
		order.FullName(), order.FullAddress())
}
