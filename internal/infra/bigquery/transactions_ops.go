package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

const (
	transactionsTable = "transactions"
	dateFormat        = "2006-01-02"
)

// InsertTransaction inserts a single TransactionRow into receipts.transactions.
func InsertTransaction(ctx context.Context, row *TransactionRow) error {
	client, err := bigquery.NewClient(ctx, ProjectID())
	if err != nil {
		return fmt.Errorf("InsertTransaction: bigquery client: %w", err)
	}
	defer client.Close()

	return InsertTransactionWithClient(ctx, client, row)
}

// InsertTransactionWithClient inserts a single TransactionRow into
// receipts.transactions using the provided BigQuery client. The amounts
// column is a REPEATED RECORD, which streaming inserts handle and DML
// parameters do not, so this one stays on the streaming path.
func InsertTransactionWithClient(ctx context.Context, client *bigquery.Client, row *TransactionRow) error {
	if row == nil {
		return nil
	}

	// Use fully qualified table name to avoid project ID issues
	table := client.DatasetInProject(ProjectID(), datasetID).Table(transactionsTable)
	inserter := table.Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("InsertTransaction: inserting row: %w", err)
	}

	return nil
}

// QueryTransactionsByDateRange queries transactions parsed within the
// specified date range.
func QueryTransactionsByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*TransactionRow, error) {
	client, err := bigquery.NewClient(ctx, ProjectID())
	if err != nil {
		return nil, fmt.Errorf("QueryTransactionsByDateRange: bigquery client: %w", err)
	}
	defer client.Close()

	return QueryTransactionsByDateRangeWithClient(ctx, client, startDate, endDate)
}

// QueryTransactionsByDateRangeWithClient queries transactions parsed within
// the specified date range using the provided BigQuery client. Only includes
// transactions whose receipt parsed successfully.
func QueryTransactionsByDateRangeWithClient(ctx context.Context, client *bigquery.Client, startDate, endDate time.Time) ([]*TransactionRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT
			t.transaction_id,
			t.receipt_id,
			t.user_id,
			t.parse_date,
			t.transaction_type,
			t.amounts,
			t.dates,
			t.time_of_day,
			t.merchant,
			t.card_type,
			t.card_last4,
			t.reference_numbers,
			t.account_numbers,
			t.banks,
			t.document_labels,
			t.is_valid,
			t.warnings,
			t.errors,
			t.raw_text,
			t.parser_version,
			t.created_ts,
			t.updated_ts
		FROM %s.%s t
		INNER JOIN %s.%s r
		  ON t.receipt_id = r.receipt_id
		WHERE t.parse_date >= @start_date
		  AND t.parse_date <= @end_date
		  AND r.parse_status = 'PARSED'
		ORDER BY t.parse_date, t.created_ts
	`, datasetID, transactionsTable, datasetID, receiptsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "start_date", Value: startDate.Format(dateFormat)},
		{Name: "end_date", Value: endDate.Format(dateFormat)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryTransactionsByDateRange: query read: %w", err)
	}

	var rows []*TransactionRow
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryTransactionsByDateRange: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}
